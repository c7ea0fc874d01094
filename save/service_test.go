package save_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
	"github.com/qingyunzi/xiuxian/server/model"
	"github.com/qingyunzi/xiuxian/server/save"
	"github.com/qingyunzi/xiuxian/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func newService(t *testing.T) *save.Service {
	return save.NewService(testutil.SetupTestDB(t), zap.NewNop())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	st := player.New("云泽")
	st.SpiritStones = 777
	st.Inventory = []item.Item{{
		ID: item.NewID(), Name: "止血草", Category: item.CategoryHerb,
		Quantity: 4, Rarity: item.RarityCommon,
		Effect: &item.Effect{HP: item.IntPtr(20)},
	}}
	snap := save.Snapshot{
		Player: st,
		Logs:   []gamelog.Entry{{Type: gamelog.TypeGain, Message: "获得止血草"}},
	}
	require.NoError(t, svc.Save(ctx, "slot1", snap))

	got, err := svc.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, save.SnapshotVersion, got.Version)
	assert.Equal(t, "云泽", got.Player.Name)
	assert.Equal(t, 777, got.Player.SpiritStones)
	require.Len(t, got.Player.Inventory, 1)
	assert.Equal(t, 20, *got.Player.Inventory[0].Effect.HP)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "获得止血草", got.Logs[0].Message)
}

func TestSave_OverwritesSlot(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "slot1", save.Snapshot{Player: player.New("甲")}))
	require.NoError(t, svc.Save(ctx, "slot1", save.Snapshot{Player: player.New("乙")}))

	got, err := svc.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, "乙", got.Player.Name)

	slots, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot1"}, slots)
}

func TestLoad_MissingSlot(t *testing.T) {
	svc := newService(t)
	_, err := svc.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, save.ErrSlotNotFound)
}

func TestSave_EmptySlotRejected(t *testing.T) {
	svc := newService(t)
	err := svc.Save(context.Background(), "", save.Snapshot{Player: player.New("测试")})
	assert.Error(t, err)
}

func TestLoad_OldSnapshotSynthesized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := save.NewService(db, zap.NewNop())
	ctx := context.Background()

	// A hand-written legacy payload: no version, no lifespan, no grotto, an
	// equipped reference to an item that is not in the bag.
	legacy := `{
		"player": {
			"name": "旧档",
			"hp": 900,
			"maxHp": 0,
			"spiritStones": 5,
			"equippedItems": {"weapon": "ghost-id"}
		}
	}`
	rec := &model.SaveSlot{Slot: "legacy", Snapshot: datatypes.JSON([]byte(legacy))}
	require.NoError(t, db.Create(rec).Error)

	got, err := svc.Load(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Version)
	p := got.Player
	assert.Equal(t, "旧档", p.Name)
	assert.Equal(t, 100, p.MaxHP)
	assert.Equal(t, 100, p.HP, "clamped to the synthesized max")
	assert.Equal(t, 100, p.MaxLifespan)
	assert.Empty(t, p.Equipped, "stale equip reference pruned")
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "slot1", save.Snapshot{Player: player.New("甲")}))
	require.NoError(t, svc.Delete(ctx, "slot1"))

	_, err := svc.Load(ctx, "slot1")
	assert.ErrorIs(t, err, save.ErrSlotNotFound)
}

func TestSnapshot_JSONShape(t *testing.T) {
	st := player.New("测试")
	snap := save.Snapshot{Version: save.SnapshotVersion, Player: st}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	p := m["player"].(map[string]interface{})
	_, hasEquipped := p["equippedItems"]
	assert.True(t, hasEquipped, "equipment map keeps its legacy field name")
}

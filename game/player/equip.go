package player

import (
	"github.com/qingyunzi/xiuxian/server/gameerr"
	"github.com/qingyunzi/xiuxian/server/game/item"
)

// Equip assigns the item to its resolved slot, displacing whatever occupied
// the slot. The displaced item simply loses its mapping; instances stay in
// the inventory either way.
func Equip(st State, itemID string) (State, error) {
	it, ok := item.FindByID(st.Inventory, itemID)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "背包中没有该物品！")
	}
	if !it.IsEquippable || it.Slot == "" {
		return st, gameerr.New(gameerr.InvalidState, "【%s】无法装备。", it.Name)
	}
	if st.IsEquipped(itemID) {
		return st, gameerr.New(gameerr.InvalidState, "【%s】已经装备。", it.Name)
	}
	next := st.Clone()
	next.Equipped[it.Slot] = itemID
	next.Statistics.EquipCount++
	return next, nil
}

// Unequip clears the given slot.
func Unequip(st State, slot item.Slot) (State, error) {
	if _, ok := st.Equipped[slot]; !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "该槽位没有装备。")
	}
	next := st.Clone()
	delete(next.Equipped, slot)
	return next, nil
}

// SetNatalArtifact binds an artifact as the natal item, granting it the
// permanent stat multiplier. Only artifacts qualify; rebinding replaces the
// previous bond.
func SetNatalArtifact(st State, itemID string) (State, error) {
	it, ok := item.FindByID(st.Inventory, itemID)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "背包中没有该物品！")
	}
	if it.Category != item.CategoryArtifact {
		return st, gameerr.New(gameerr.InvalidState, "只有法宝才能祭炼为本命法宝。")
	}
	next := st.Clone()
	next.NatalArtifactID = itemID
	return next, nil
}

// Discard drops an entire item instance. Equipped items must be unequipped
// first; attempting to discard one is a reported error, not a silent no-op.
func Discard(st State, itemID string) (State, error) {
	it, ok := item.FindByID(st.Inventory, itemID)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "背包中没有该物品！")
	}
	if st.IsEquipped(itemID) {
		return st, gameerr.New(gameerr.InvalidState, "无法丢弃已装备的物品！请先卸下。")
	}
	next := st.Clone()
	next.Inventory, _ = item.RemoveOrDecrement(next.Inventory, itemID, it.Quantity)
	if next.NatalArtifactID == itemID {
		next.NatalArtifactID = ""
	}
	return next, nil
}

// Sell converts qty units of an item into spirit stones at the valuator's
// price. Equipped instances cannot be sold.
func Sell(st State, itemID string, qty int, rarities item.RarityTable) (State, int, error) {
	it, ok := item.FindByID(st.Inventory, itemID)
	if !ok {
		return st, 0, gameerr.New(gameerr.InvalidTarget, "背包中没有该物品！")
	}
	if st.IsEquipped(itemID) {
		return st, 0, gameerr.New(gameerr.InvalidState, "无法出售已装备的物品！请先卸下。")
	}
	if qty < 1 {
		qty = 1
	}
	if qty > it.Quantity {
		return st, 0, gameerr.Insufficient(it.Name, qty, it.Quantity)
	}
	price := item.SellPrice(it, rarities) * qty
	next := st.Clone()
	next.Inventory, _ = item.RemoveOrDecrement(next.Inventory, itemID, qty)
	next.SpiritStones += price
	if next.NatalArtifactID == itemID {
		if _, still := item.FindByID(next.Inventory, itemID); !still {
			next.NatalArtifactID = ""
		}
	}
	return next, price, nil
}

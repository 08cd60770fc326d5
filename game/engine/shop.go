package engine

// ShopItem is one line of the price list
type ShopItem struct {
	Item     string `json:"item"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

var shopItems = map[string]ShopItem{
	string(Wheat):  {Item: string(Wheat), Price: 2, Quantity: 1},
	string(Tomato): {Item: string(Tomato), Price: 5, Quantity: 1},
	string(Carrot): {Item: string(Carrot), Price: 3, Quantity: 1},
	ItemWater:      {Item: ItemWater, Price: 1, Quantity: 3},
	ItemFertilizer: {Item: ItemFertilizer, Price: 2, Quantity: 1},
}

var shopOrder = []string{string(Wheat), string(Tomato), string(Carrot), ItemWater, ItemFertilizer}

// PriceList returns the shop's items in display order
func PriceList() []ShopItem {
	list := make([]ShopItem, 0, len(shopOrder))
	for _, name := range shopOrder {
		list = append(list, shopItems[name])
	}
	return list
}

// LookupShopItem finds an item on the price list
func LookupShopItem(item string) (ShopItem, bool) {
	si, ok := shopItems[item]
	return si, ok
}

// Buy spends coins on item. The player is untouched unless the purchase succeeds.
func Buy(player *Player, item string) ActionResult {
	result := ActionResult{Action: "buy", Item: item}

	si, ok := shopItems[item]
	if !ok {
		result.Code = CodeInvalidTarget
		result.Message = "The shop doesn't sell " + item + "."
		return result
	}
	if player.Coins < si.Price {
		result.Code = CodeInsufficientResource
		result.Message = "Not enough coins for " + item + "."
		return result
	}

	player.Coins -= si.Price
	player.AddItem(si.Item, si.Quantity)
	result.Success = true
	result.Code = CodeOK
	result.Message = "Bought " + item + "."
	return result
}

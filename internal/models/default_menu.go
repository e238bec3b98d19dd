package models

// DefaultMenu returns the built-in catalog used until a scan or a catalog file replaces it.
// Each call returns a fresh copy.
func DefaultMenu() FullMenu {
	return FullMenu{
		Soup: MenuCategory{
			Title:    "湯 (任選一項) Choice of Soup",
			Required: true,
			Items: []MenuItem{
				{ID: "s1", Name: "法式起司焗洋蔥湯 French Onion Soup au Gratin"},
				{ID: "s2", Name: "龍蝦濃湯 Lobster Bisque"},
				{ID: "s3", Name: "奶油蘑菇湯 Cream of Wild Mushroom Soup"},
			},
		},
		Appetizer: MenuCategory{
			Title:    "開胃前菜 (任選一項) Choice of Appetizer",
			Required: true,
			Items: []MenuItem{
				{ID: "ap1", Name: "太平洋明蝦佐蜂蜜芥末醬 Pacific King Prawn with Honey Mustard Sauce"},
				{ID: "ap2", Name: "屏東甘鯛、東港烏魚子佐白酒蛤蜊醬 Pingtung Tilefish and Donggang Mullet Roe"},
			},
		},
		Main: MenuCategory{
			Title:    "主餐 (任選一項) Choice of Main Course",
			Required: true,
			Items: []MenuItem{
				// surf and turf
				{ID: "m1", Name: "豪華海陸: 美國頂級老饕肋眼 Surf & Turf: U.S. Prime Rib Eye Cap", Price: Price(6200)},
				{ID: "m2", Name: "豪華海陸: 美國頂級菲力 Surf & Turf: U.S. Prime Filet Mignon Steak", Price: Price(4900)},
				{ID: "m3", Name: "豪華海陸: 美國頂級肋眼 Surf & Turf: U.S. Prime Rib Eye Steak", Price: Price(4600)},
				{ID: "m4", Name: "豪華海陸: 美國頂級沙朗 Surf & Turf: U.S. Prime Sirloin Steak", Price: Price(4400)},
				// US prime
				{ID: "m5", Name: "老饕肋眼上選牛排 U.S. Prime Rib Eye Cap", Price: Price(5200)},
				{ID: "m6", Name: "菲力牛排 U.S. Prime Filet Mignon Steak", Price: Price(3900)},
				{ID: "m7", Name: "肋眼牛排 U.S. Prime Rib Eye Steak", Price: Price(3600)},
				{ID: "m8", Name: "沙朗牛排 U.S. Prime Sirloin Steak", Price: Price(3400)},
				// wagyu
				{ID: "m9", Name: "黑毛和牛菲力牛排 A5 Filet Mignon Wagyu", Price: Price(6000)},
				{ID: "m10", Name: "黑毛和牛肋眼牛排 A5 Rib Eye Steak Wagyu", Price: Price(5900)},
				{ID: "m11", Name: "黑毛和牛沙朗牛排 A5 Sirloin Steak Wagyu", Price: Price(5200)},
				// specialties
				{ID: "m12", Name: "海鮮盤 (每日鮮魚、太平洋龍蝦半隻) Seafood Platter", Price: Price(4200)},
				{ID: "m13", Name: "西班牙伊比利豚上蓋肉 Spain Iberico Bellota Pork", Price: Price(3600)},
				{ID: "m14", Name: "紐西蘭高地和羊排 New Zealand Lumina Lamb Chop", Price: Price(3400)},
			},
		},
		ALaCarte: MenuCategory{
			Title:       "饕客加選 A La Carte",
			MultiSelect: true,
			Items: []MenuItem{
				{ID: "al1", Name: "香煎鴨肝 Seared Duck Foie Gras", Price: Price(1080)},
				{ID: "al2", Name: "九孔鮑魚佐松露奶油醬 Baby Abalone with Truffle Butter Sauce", Price: Price(980)},
				{ID: "al3", Name: "海膽牛肉捲 (2捲) Uni Beef Rolls (2 Rolls)", Price: Price(980)},
			},
		},
	}
}

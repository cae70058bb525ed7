package domain

// Condition represents the wear grade of a skin.
type Condition string

const (
	FactoryNew    Condition = "Factory New"
	MinimalWear   Condition = "Minimal Wear"
	FieldTested   Condition = "Field-Tested"
	WellWorn      Condition = "Well-Worn"
	BattleScarred Condition = "Battle-Scarred"
	// NotApplicable is used for items without a wear grade (cases, stickers, etc.).
	NotApplicable Condition = "Not Applicable"
)

// Platform represents a marketplace where skins are bought or sold.
type Platform string

const (
	CSGOEmpire  Platform = "CSGOEmpire"
	CSGORoll    Platform = "CSGORoll"
	SteamMarket Platform = "Steam Market"
	OtherMarket Platform = "Other"
)

// Buyer identifies who funded a purchase.
type Buyer string

// Default rosters. Config may replace these lists; the types above stay the same.
var (
	DefaultConditions = []string{
		string(FactoryNew), string(MinimalWear), string(FieldTested),
		string(WellWorn), string(BattleScarred), string(NotApplicable),
	}
	DefaultPlatforms = []string{
		string(CSGOEmpire), string(CSGORoll), string(SteamMarket), string(OtherMarket),
	}
	DefaultBuyers = []string{"LP", "GGE", "TOM"}
)

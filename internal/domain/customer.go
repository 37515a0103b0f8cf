package domain

// Region — регион доставки клиента.
type Region string

const (
	RegionNorth     Region = "north"
	RegionNortheast Region = "northeast"
	RegionMidwest   Region = "midwest"
	RegionSoutheast Region = "southeast"
	RegionSouth     Region = "south"
)

// Tier — уровень лояльности клиента.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Customer описывает покупателя. В расчёте цены не участвует,
// используется только как идентичность для внешних вызовов.
type Customer struct {
	ID     int64
	Name   string
	Region Region
	Tier   Tier
}

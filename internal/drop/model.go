package drop

import "time"

// Status represents the lifecycle state of a drop
type Status string

const (
	StatusUnsold       Status = "unsold"
	StatusListed       Status = "listed"
	StatusSold         Status = "sold"
	StatusDisenchanted Status = "disenchanted"
)

// DisenchantTarget is the resource an item is converted into instead of
// being sold.
type DisenchantTarget string

const (
	DisenchantEssence DisenchantTarget = "essence"
	DisenchantStone   DisenchantTarget = "stone"
)

// Roll bounds for drop quality values.
const (
	MainRollMin      = -5
	MainRollMax      = 5
	SecondaryRollMin = -1
	SecondaryRollMax = 1
)

// itemTypes is the set of accepted item type tags.
var itemTypes = map[string]bool{
	"Knuckle": true, "Gun": true, "Claw": true, "Dagger": true,
	"Wand": true, "Staff": true, "Bow": true, "Crossbow": true,
	"1h sword": true, "2h sword": true, "1h bw": true, "2h bw": true,
	"1h axe": true, "2h axe": true, "Polearm": true, "Spear": true,
}

// ValidItemType reports whether the tag is an accepted item type.
func ValidItemType(tag string) bool {
	return itemTypes[tag]
}

// Drop represents an item obtained during a run. The sale reference and the
// disenchant target are mutually exclusive terminal states.
type Drop struct {
	ID               int64             `json:"id"`
	RunID            int64             `json:"run_id"`
	OwnerPlayerID    int64             `json:"owner_player_id"`
	ItemType         string            `json:"item_type"`
	MainRoll         int               `json:"main_roll"`
	SecondaryRoll    int               `json:"secondary_roll"`
	Notes            *string           `json:"notes,omitempty"`
	Status           Status            `json:"status"`
	SaleID           *int64            `json:"sale_id,omitempty"`
	DisenchantedInto *DisenchantTarget `json:"disenchanted_into,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`

	// Populated via JOIN
	OwnerName string `json:"owner_name,omitempty"`
}

package gacha

// Category tells which upstream record shape a pull came from.
type Category string

const (
	CategoryCharacter Category = "character"
	CategoryWeapon    Category = "weapon"
)

const (
	// RarityRare is the top rarity tracked by pity.
	RarityRare = 6
	// RaritySecondary and above resets the secondary (5-star) counter.
	RaritySecondary = 5
)

// PullRecord is one pull in the unified shape every calculator works on.
// Callers guarantee no two records of one banner share (SequenceID, Category).
type PullRecord struct {
	RecordID      string   `json:"recordId"`
	BannerID      string   `json:"bannerId"`
	ItemName      string   `json:"itemName"`
	Rarity        int      `json:"rarity"` // 1..6
	IsNew         bool     `json:"isNew"`
	IsFree        bool     `json:"isFree"`
	PullTimestamp string   `json:"pullTimestamp"`
	SequenceID    string   `json:"sequenceId"`
	Category      Category `json:"category"`
}

// IsRare reports whether the record is a top-rarity pull.
func (r PullRecord) IsRare() bool { return r.Rarity == RarityRare }

// BannerConfig carries the up item of one banner. Empty UpItemName means none.
type BannerConfig struct {
	BannerID   string `json:"bannerId" yaml:"id"`
	UpItemName string `json:"upItemName,omitempty" yaml:"up_item"`
}

// isUp reports whether name is this banner's up item; false for a nil config.
func (c *BannerConfig) isUp(name string) bool {
	if c == nil || c.UpItemName == "" {
		return false
	}
	return name == c.UpItemName
}

// BannerLookup resolves banner metadata synchronously.
type BannerLookup interface {
	Banner(bannerID string) (BannerConfig, bool)
}

// BannerLookupFunc adapts a plain function to BannerLookup.
type BannerLookupFunc func(bannerID string) (BannerConfig, bool)

func (f BannerLookupFunc) Banner(bannerID string) (BannerConfig, bool) { return f(bannerID) }

// ConfigFor returns a pointer suitable for the calculators, nil when unknown.
func ConfigFor(l BannerLookup, bannerID string) *BannerConfig {
	if l == nil {
		return nil
	}
	cfg, ok := l.Banner(bannerID)
	if !ok {
		return nil
	}
	return &cfg
}

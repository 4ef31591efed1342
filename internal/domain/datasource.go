package domain

// DataSource labels where price/reference data for an asset originates,
// e.g. "manual_entry" or an external feed name.
type DataSource struct {
	ID     int64
	Source string
}

// AttachTarget selects which level a data source is linked to.
// Exactly one level is authoritative for a given asset market at any time.
type AttachTarget string

const (
	AttachToAsset       AttachTarget = "asset"
	AttachToAssetMarket AttachTarget = "asset market"
)

// Valid reports whether the target is one of the two known levels.
func (t AttachTarget) Valid() bool {
	return t == AttachToAsset || t == AttachToAssetMarket
}

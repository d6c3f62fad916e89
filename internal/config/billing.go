package config

// Billing — комиссионная политика площадки. Процент по умолчанию
// действует для всех компаний, переопределения — пары id:процент.
type Billing struct {
	DefaultCommissionPart int           `env:"BILLING_COMMISSION_PART" envDefault:"10"`
	CommissionParts       map[int64]int `env:"BILLING_COMPANY_COMMISSION_PARTS"`
}

package domain

import "time"

// Shop is a connected merchant storefront. The domain is the tenant key
// for every stored document.
type Shop struct {
	Domain      string    `json:"domain" bson:"domain"`
	AccessToken string    `json:"access_token" bson:"access_token"`
	Scopes      []string  `json:"scopes" bson:"scopes"`
	InstalledAt time.Time `json:"installed_at" bson:"installed_at"`
}

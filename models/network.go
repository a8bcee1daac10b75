package models

type Rank struct {
	Number int    `json:"numero" bson:"number"`
	Name   string `json:"name" bson:"name"`
}

type LicenseSummary struct {
	Name   string `json:"name,omitempty" bson:"name"`
	Price  string `json:"price,omitempty" bson:"price"`
	Active bool   `json:"active" bson:"active"`
}

// User is the viewer a network tree is rooted at.
type User struct {
	Username string         `json:"username" bson:"_id"`
	Rank     *Rank          `json:"rank,omitempty" bson:"rank,omitempty"`
	License  LicenseSummary `json:"license" bson:"license"`
	Admin    bool           `json:"admin" bson:"admin"`
}

// Actor is the identity u acts under; admin rights come from the stored record.
func (u User) Actor() Actor {
	return Actor{Username: u.Username, Admin: u.Admin}
}

// DownlineRecord is one entry of the flat downline listing of a root user.
type DownlineRecord struct {
	Username   string         `json:"username" bson:"username"`
	Level      int            `json:"level" bson:"level"`
	ReferredBy string         `json:"referred_by" bson:"referred_by"`
	License    LicenseSummary `json:"license" bson:"license"`
}

type NodeUser struct {
	Username string         `json:"username"`
	Level    int            `json:"level"`
	License  LicenseSummary `json:"license"`
}

// NetworkNode owns its children by value.
type NetworkNode struct {
	User       NodeUser      `json:"user"`
	ReferredBy string        `json:"referred_by,omitempty"`
	Children   []NetworkNode `json:"children"`
}

// NetworkTree is what the network service hands to its consumers.
type NetworkTree struct {
	Root            NetworkNode `json:"root"`
	MaxVisibleDepth int         `json:"max_visible_depth"`
	Orphans         int         `json:"orphans"`
}

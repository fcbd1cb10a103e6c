package model

// Stats is the admin overview over all three collections.
type Stats struct {
    Users        int `json:"users"`
    Reservations int `json:"reservations"`
    Confirmed    int `json:"confirmed"`
    Pending      int `json:"pending"`
    Payments     int `json:"payments"`
}

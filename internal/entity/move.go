package entity

// Move is a solved position: Next is Board after Player's chosen reply.
type Move struct {
	Player Mark  `json:"player"`
	Board  Board `json:"board"`
	Next   Board `json:"next"`
}

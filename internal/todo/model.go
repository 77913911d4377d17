package todo

import "time"

// Todo is the persisted task item. Location is a pointer so that an absent
// location serializes as JSON null rather than "".
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Location  *string   `json:"location"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

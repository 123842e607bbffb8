package models

// InventoryItem is one pantry or household stock entry.
type InventoryItem struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit,omitempty"`
	ExpDate  string  `json:"exp_date,omitempty"`
	Location string  `json:"location,omitempty"`
}

// ShoppingItem is one shopping list row.
type ShoppingItem struct {
	ID       int64    `json:"id,omitempty"`
	Item     string   `json:"item"`
	Qty      *float64 `json:"qty,omitempty"`
	Category string   `json:"category,omitempty"`
	Checked  bool     `json:"checked,omitempty"`
}

// Bill is one recurring or one-off household bill.
type Bill struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date,omitempty"`
	Category  string  `json:"category,omitempty"`
	Recurring bool    `json:"recurring,omitempty"`
	Paid      bool    `json:"paid,omitempty"`
}

// Chore is one assigned household chore.
type Chore struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	AssigneeID int64  `json:"assignee_id"`
	DueDate    string `json:"due_date,omitempty"`
	DueTime    string `json:"due_time,omitempty"`
	Priority   int    `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
}

package models

// MenuItem is the backend's menu entity. The gateway never edits it except
// through the admin proxy calls.
type MenuItem struct {
	MenuID      int     `json:"menuId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"` // rupiah, integer unit
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Menu categories offered by the kitchen.
var Categories = []string{"Makanan", "Minuman", "Camilan"}

// CartLine is one (menu item, quantity) pairing in the customer's pending
// order. A line with quantity <= 0 must never exist; callers remove instead.
type CartLine struct {
	MenuID      int    `json:"menuId"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       int    `json:"price,omitempty"` // unit price as reported by the backend
	Quantity    int    `json:"quantity"`
	Subtotal    int    `json:"subtotal,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Customer is the owner reference embedded in an order response.
type Customer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	NoTelp   string `json:"noTelp,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Registration is the signup payload forwarded to the backend. The password
// is hashed server-side; the gateway never stores it.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	NoTelp   string `json:"noTelp"`
}

// OrderItem is a snapshot frozen at checkout time. Later menu edits do not
// touch it.
type OrderItem struct {
	MenuID    int    `json:"menuId"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"` // line total
	UnitPrice int    `json:"unitPrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Order as returned by the backend. The gateway only observes it; every
// transition is driven by admin action server-side.
type Order struct {
	OrderID       int         `json:"orderId"`
	Customer      Customer    `json:"customer"`
	TableNumber   int         `json:"tableNumber"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	QueueNumber   int         `json:"queueNumber"`
	TotalPrice    int         `json:"totalPrice"`
	Items         []OrderItem `json:"items"`
}

// Order lifecycle statuses, strictly forward-only.
const (
	StatusConfirmed  = "CONFIRMED"
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusDelivered  = "DELIVERED"
)

// OrderStatusFlow is the display order of the stepper. Progress is derived
// from the index of the current status in this slice.
var OrderStatusFlow = []string{StatusConfirmed, StatusInQueue, StatusInProgress, StatusDelivered}

// Unit falls back to price/quantity for backends that omit unitPrice.
func (it OrderItem) Unit() int {
	if it.UnitPrice > 0 {
		return it.UnitPrice
	}
	if it.Quantity > 0 {
		return it.Price / it.Quantity
	}
	return 0
}

package transport

// OrderItemSubmission is one untrusted line item from checkout. Name and
// price are display hints; the service snapshots authoritative values from
// the catalog when the product is known.
type OrderItemSubmission struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// CustomerSubmission is the untrusted customer block of a checkout.
type CustomerSubmission struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ZipCode         string `json:"zipCode"`
	Address         string `json:"address"`
	DetailAddress   string `json:"detailAddress"`
	DeliveryMessage string `json:"deliveryMessage"`
}

// OrderSubmission is the raw checkout payload.
type OrderSubmission struct {
	Items        []OrderItemSubmission `json:"items"`
	CustomerInfo CustomerSubmission    `json:"customerInfo"`
}

// ContactSubmission is the raw contact-form payload.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// UpdateStatusRequest mutates an order's lifecycle state.
type UpdateStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
	Notes          string `json:"notes"`
}

// AdminLoginRequest is the admin credential check payload.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

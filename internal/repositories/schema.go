package repositories

// Table names and select lists are centralized here so queries cannot drift
// from the schema silently.
const (
	tableCategories   = "categories"
	tableProducts     = "products"
	tableSuppliers    = "suppliers"
	tableCustomers    = "customers"
	tableOrders       = "orders"
	tableOrderItems   = "order_items"
	tablePayments     = "payments"
	tableTransactions = "transactions"
	tableUsers        = "users"
)

const (
	categoryColumns    = "id, name, description, created_at, updated_at"
	productColumns     = "id, name, barcode, image_url, description, price, discount, cost, stock, min_threshold, max_threshold, is_active, supplier_id, category_id, created_at, updated_at"
	supplierColumns    = "id, name, contact_name, email, phone, address, created_at, updated_at"
	customerColumns    = "id, name, email, phone, address, created_at, updated_at"
	orderColumns       = "id, order_number, payment_id, customer_id, user_id, status, completed_at, comments, shipping_address, created_at, updated_at"
	orderItemColumns   = "id, order_id, product_id, quantity, unit_price, total_price, created_at"
	paymentColumns     = "id, status, payment_date, payment_method, amount, tax_amount, created_at, updated_at"
	transactionColumns = "id, product_id, transaction_type, quantity, transaction_date, created_at"
	userColumns        = "id, full_name, email, password_hash, phone, address, is_admin, created_at, updated_at"
)

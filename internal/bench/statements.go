package bench

import "querybench/internal/perf"

// DefaultStatements is the example workload against the e-commerce schema.
// Users point the tool at their own schema by editing this set; the runner
// itself is workload-agnostic.
func DefaultStatements() []Statement {
	return []Statement{
		{
			Name: "Q1",
			Type: perf.QuerySimple,
			SQL:  "SELECT * FROM orders WHERE order_date BETWEEN '2017-01-01' AND '2017-12-31'",
			Flux: `from(bucket: "ecommerce") |> range(start: 2017-01-01T00:00:00Z, stop: 2018-01-01T00:00:00Z) |> filter(fn: (r) => r["_measurement"] == "orders")`,
		},
		{
			Name: "Q2",
			Type: perf.QuerySimple,
			SQL:  "SELECT state, COUNT(*) AS order_count FROM customers JOIN orders USING(customer_id) GROUP BY state",
		},
		{
			Name: "Q1",
			Type: perf.QueryComplex,
			SQL: `SELECT c.customer_id, o.order_id, p.payment_value, oi.price, s.seller_id
				FROM customers c
				JOIN orders o ON c.customer_id = o.customer_id
				JOIN payments p ON o.order_id = p.order_id
				JOIN order_items oi ON o.order_id = oi.order_id
				JOIN sellers s ON oi.seller_id = s.seller_id
				WHERE o.order_status = 'delivered'`,
		},
		{
			Name: "I1",
			Type: perf.QueryCRUD,
			SQL:  "INSERT INTO orders (order_id, customer_id, order_status) VALUES ('bench_001', 'cust_001', 'pending')",
		},
		{
			Name: "U1",
			Type: perf.QueryCRUD,
			SQL:  "UPDATE orders SET order_status = 'delivered' WHERE order_id = 'bench_001'",
		},
		{
			Name: "D1",
			Type: perf.QueryCRUD,
			SQL:  "DELETE FROM orders WHERE order_id = 'bench_001'",
		},
	}
}

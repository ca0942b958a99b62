// Package order implements the order aggregate: the Order root, its owned
// items and addons, the order and item status machines, and the receipt
// totals. The order status is always derived from the item statuses through a
// single function, DeriveStatus, used by mutation and read paths alike.
package order

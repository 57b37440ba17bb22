// algebra.go declares the Manager[K]/Polynomial[K] interfaces. boolean.go
// and minplus.go are the two concrete carriers this module ships:
// qualitative (bool) and quantitative (tropical float64), respectively.
package algebra

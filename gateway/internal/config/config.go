package config

import (
	"log"
	"os"
)

type Config struct {
	ListenAddr   string
	OrdersURL    string
	ProductsURL  string
	SuppliersURL string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	cfg := &Config{
		ListenAddr:   getenv("GATEWAY_ADDR", ":8080"),
		OrdersURL:    must(os.Getenv("ORDERS_URL"), "ORDERS_URL"),
		ProductsURL:  must(os.Getenv("PRODUCTS_URL"), "PRODUCTS_URL"),
		SuppliersURL: must(os.Getenv("SUPPLIERS_URL"), "SUPPLIERS_URL"),
	}
	return cfg
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	s := newStubServer()
	addr := ":" + port
	fmt.Printf("gateway stub listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}

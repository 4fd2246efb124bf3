package main

import (
	"flag"
	"fmt"
	"os"

	"adminauth/pkg/generator"
)

func main() {
	length := flag.Int("length", 48, "secret length in characters")
	env := flag.Bool("env", false, "print as a JWT_SECRET= line for a .env file")
	flag.Parse()

	secret, err := generator.GenerateSecret(*length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *env {
		fmt.Printf("JWT_SECRET=%s\n", secret)
		return
	}
	fmt.Println(secret)
}

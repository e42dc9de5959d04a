package main

import (
	"flag"
	"fmt"
	"log"

	"sales-dashboard/pkg/utils"
)

// Prints a bcrypt hash for seeding or resetting a profile password by hand.
func main() {
	password := flag.String("password", "", "senha a ser convertida em hash")
	flag.Parse()

	if *password == "" {
		log.Fatal("informe a senha com -password")
	}

	hashedPassword, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Erro ao gerar o hash: %v", err)
	}
	fmt.Println(hashedPassword)
}

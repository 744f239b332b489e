package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Seeds a handful of demo customers with accounts for local testing.
func main() {
	mysqlUser := getEnv("MYSQL_USER", "eazybank")
	mysqlPassword := getEnv("MYSQL_PASSWORD", "eazybank123")
	mysqlHost := getEnv("MYSQL_HOST", "localhost:3306")
	mysqlDatabase := getEnv("MYSQL_DATABASE", "eazybank")

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		mysqlUser, mysqlPassword, mysqlHost, mysqlDatabase)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping MySQL: %v", err)
	}

	fmt.Println("Connected to MySQL successfully")

	customers := []struct {
		name          string
		email         string
		mobileNumber  string
		accountNumber int64
	}{
		{"Saugat Dev", "saugat@eazybank.com", "9876543210", 1234567890},
		{"Madan Reddy", "madan@eazybank.com", "4354437687", 1098765432},
		{"Happy Singh", "happy@eazybank.com", "9988776655", 1122334455},
	}

	now := time.Now()
	customerQuery := `
		INSERT INTO customer (name, email, mobile_number, created_at, created_by)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		    name = VALUES(name),
		    email = VALUES(email)
	`
	accountQuery := `
		INSERT INTO accounts (account_number, customer_id, account_type, branch_address, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		    account_type = VALUES(account_type),
		    branch_address = VALUES(branch_address)
	`

	for _, c := range customers {
		if _, err := db.Exec(customerQuery, c.name, c.email, c.mobileNumber, now, "Seeder"); err != nil {
			log.Fatalf("Failed to seed customer %s: %v", c.mobileNumber, err)
		}

		var customerID int64
		if err := db.QueryRow("SELECT id FROM customer WHERE mobile_number = ?", c.mobileNumber).Scan(&customerID); err != nil {
			log.Fatalf("Failed to look up customer %s: %v", c.mobileNumber, err)
		}

		if _, err := db.Exec(accountQuery, c.accountNumber, customerID, "Savings", "123 Main Street, New York", now, "Seeder"); err != nil {
			log.Fatalf("Failed to seed account for %s: %v", c.mobileNumber, err)
		}

		fmt.Printf("Seeded customer %s with account %d\n", c.mobileNumber, c.accountNumber)
	}

	fmt.Println("Seeding complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

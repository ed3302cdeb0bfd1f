// Command importUsers provisions accounts from a CSV file with the columns
// username,email,password,role,room_number,block_number,phone,work_area,register_number.
//
//	go run ./scripts/importUsers staff.csv
package main

import (
	"context"
	"dormaid/config"
	"dormaid/database"
	"dormaid/middleware"
	"dormaid/services/authService"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type importResult struct {
	Inserted int
	Skipped  int
}

func main() {
	path := "users.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	svc := authService.New(db, middleware.NewTokenService(cfg.JWTKey, cfg.TokenTTL), cfg.SaltRound)
	res, err := importUsers(context.Background(), svc, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", res.Inserted)
	log.Printf("Skipped: %d", res.Skipped)
}

func importUsers(ctx context.Context, svc *authService.Service, r io.Reader) (importResult, error) {
	var res importResult

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return res, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return res, fmt.Errorf("csv file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"username", "email", "password"} {
		if _, ok := headerIndex[required]; !ok {
			return res, fmt.Errorf("missing column %q", required)
		}
	}

	for i, row := range records[1:] {
		in := authService.RegisterInput{
			Username:       getField(row, headerIndex, "username"),
			Email:          getField(row, headerIndex, "email"),
			Password:       getField(row, headerIndex, "password"),
			Role:           getField(row, headerIndex, "role"),
			RoomNumber:     getField(row, headerIndex, "room_number"),
			BlockNumber:    getField(row, headerIndex, "block_number"),
			Phone:          getField(row, headerIndex, "phone"),
			WorkArea:       getField(row, headerIndex, "work_area"),
			RegisterNumber: getField(row, headerIndex, "register_number"),
		}
		if in.Username == "" || in.Email == "" || in.Password == "" {
			log.Printf("Row %d: username, email and password are required", i+2)
			res.Skipped++
			continue
		}

		if _, err := svc.Register(ctx, in); err != nil {
			log.Printf("Row %d (%s): %v", i+2, in.Email, err)
			res.Skipped++
			continue
		}
		res.Inserted++
	}
	return res, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// Package seed generates synthetic employee records for development
// and demos. All generated accounts share the password "password123".
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"employees/internal/auth"
	"employees/internal/employee"
)

var (
	subjectsPool = []string{"Math", "Science", "History", "English", "Art", "Physics", "Chemistry"}
	classes      = []string{"A", "B", "C", "D"}
)

// Generate produces one admin plus n employee records.
func Generate(n int) ([]employee.Employee, error) {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	items := make([]employee.Employee, 0, n+1)
	items = append(items, employee.Employee{
		Name:         "Admin User",
		Age:          35,
		Class:        "Staff",
		Subjects:     []string{},
		Attendance:   100,
		Role:         employee.RoleAdmin,
		Avatar:       "https://i.pravatar.cc/150?u=admin",
		Date:         time.Now().UTC(),
		Email:        "admin@example.com",
		PasswordHash: hash,
	})

	for i := 1; i <= n; i++ {
		items = append(items, employee.Employee{
			Name:         fmt.Sprintf("Employee %d", i),
			Age:          randInt(18, 65),
			Class:        classes[rand.Intn(len(classes))],
			Subjects:     randSubjects(),
			Attendance:   float64(randInt(60, 100)),
			Role:         employee.RoleEmployee,
			Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i),
			Date:         time.Now().UTC().Add(-time.Duration(rand.Intn(730*24)) * time.Hour),
			Email:        fmt.Sprintf("employee%d@example.com", i),
			Flagged:      rand.Intn(10) == 0,
			PasswordHash: hash,
		})
	}
	return items, nil
}

// Load generates n employees plus the admin and bulk-inserts them.
func Load(ctx context.Context, repo employee.Repository, n int) error {
	items, err := Generate(n)
	if err != nil {
		return err
	}
	if err := repo.InsertMany(ctx, items); err != nil {
		return err
	}
	log.Printf("seeded %d employee records", len(items))
	return nil
}

func randInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func randSubjects() []string {
	count := randInt(2, 4)
	perm := rand.Perm(len(subjectsPool))
	out := make([]string, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, subjectsPool[idx])
	}
	return out
}

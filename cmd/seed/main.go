// seed carga datos iniciales: un usuario administrador y un catálogo de ejemplo
// (categorías, proveedores y productos). Es idempotente: si el email o el SKU
// ya existen, se omite la fila.
//
// Uso: go run ./cmd/seed [email] [password]
// Por defecto crea admin@inventario.local con una contraseña aleatoria que
// se imprime por consola.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/infrastructure/postgres"
	"github.com/abastor/inventario-api/pkg/config"
)

func main() {
	email := "admin@inventario.local"
	password := ""
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	if password == "" {
		buf := make([]byte, 9)
		if _, err := rand.Read(buf); err != nil {
			fatal("generar contraseña: %v", err)
		}
		password = hex.EncodeToString(buf)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("cargar configuración: %v", err)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fatal("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	now := time.Now().UTC()

	// Admin
	if existing, err := userRepo.FindByEmail(email); err != nil {
		fatal("buscar admin: %v", err)
	} else if existing != nil {
		fmt.Printf("admin %s ya existe, se omite\n", email)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fatal("hash de contraseña: %v", err)
		}
		admin := &entity.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fatal("crear admin: %v", err)
		}
		fmt.Printf("admin creado: %s / %s\n", email, password)
	}

	// Categorías
	categoryIDs := make(map[string]string)
	for _, name := range []string{"Electrónica", "Papelería", "Aseo"} {
		existing, err := categoryRepo.GetByName(name)
		if err != nil {
			fatal("buscar categoría %s: %v", name, err)
		}
		if existing != nil {
			categoryIDs[name] = existing.ID
			continue
		}
		c := &entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := categoryRepo.Create(c); err != nil {
			fatal("crear categoría %s: %v", name, err)
		}
		categoryIDs[name] = c.ID
	}

	// Proveedores
	suppliers := []*entity.Supplier{
		{ID: uuid.NewString(), Name: "Distribuidora Andina", Email: "ventas@andina.co", Phone: "+57 300 111 2233", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Importadora del Norte", Email: "pedidos@delnorte.co", Phone: "+57 310 444 5566", CreatedAt: now, UpdatedAt: now},
	}
	for _, s := range suppliers {
		if err := supplierRepo.Create(s); err != nil {
			fatal("crear proveedor %s: %v", s.Name, err)
		}
	}

	// Productos de ejemplo
	products := []*entity.Product{
		{
			SKU: "ELEC-001", Name: "Laptop 14\"", Description: "Portátil de oficina",
			CostPrice: decimal.NewFromInt(1800000), SalePrice: decimal.NewFromInt(2400000),
			Quantity: 10, ReorderThreshold: 5, CategoryID: categoryIDs["Electrónica"],
		},
		{
			SKU: "ELEC-002", Name: "Mouse inalámbrico", Description: "",
			CostPrice: decimal.NewFromInt(35000), SalePrice: decimal.NewFromInt(59000),
			Quantity: 40, ReorderThreshold: 10, CategoryID: categoryIDs["Electrónica"],
		},
		{
			SKU: "PAP-001", Name: "Resma papel carta", Description: "500 hojas 75g",
			CostPrice: decimal.NewFromInt(12000), SalePrice: decimal.NewFromInt(18500),
			Quantity: 60, ReorderThreshold: 20, CategoryID: categoryIDs["Papelería"],
		},
		{
			SKU: "ASE-001", Name: "Jabón líquido 1L", Description: "",
			CostPrice: decimal.NewFromInt(8000), SalePrice: decimal.NewFromInt(13000),
			Quantity: 3, ReorderThreshold: 6, CategoryID: categoryIDs["Aseo"],
		},
	}
	for _, p := range products {
		existing, err := productRepo.GetBySKU(p.SKU)
		if err != nil {
			fatal("buscar producto %s: %v", p.SKU, err)
		}
		if existing != nil {
			fmt.Printf("producto %s ya existe, se omite\n", p.SKU)
			continue
		}
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(p); err != nil {
			fatal("crear producto %s: %v", p.SKU, err)
		}
	}

	fmt.Println("seed completado")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/helper"
	"golang.org/x/crypto/bcrypt"
)

func TestImportCustomersSkipsBadRowsAndKeepsGood(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	file := strings.NewReader(
		"code,name,contact_email\n" +
			"acme,Acme Corp,ops@acme.example\n" +
			"BOLT,,\n",
	)
	res, err := svc.ImportCustomers(file, 1, "")
	if err != nil {
		t.Fatalf("import customers: %v", err)
	}

	if res.Created != 1 {
		t.Fatalf("created = %d, want 1", res.Created)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(res.Errors))
	}
	if res.Errors[0].Row != 3 {
		t.Errorf("error row = %d, want 3 (row 1 is the header)", res.Errors[0].Row)
	}
	if res.Errors[0].Message != "name is required" {
		t.Errorf("message = %q, want %q", res.Errors[0].Message, "name is required")
	}

	var customer domain.Customer
	if err := db.Where("code = ?", "ACME").First(&customer).Error; err != nil {
		t.Fatalf("lookup imported customer: %v", err)
	}
	if !customer.IsActive {
		t.Error("imported customer should start active")
	}
}

func TestImportCustomersRejectsDuplicateCodes(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	if err := db.Create(&domain.Customer{Code: "ACME", Name: "Acme Corp", IsActive: true}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	// one code collides with the database, one collides within the file
	file := strings.NewReader(
		"code,name\n" +
			"ACME,Acme Again\n" +
			"bolt,Bolt Ltd\n" +
			"BOLT,Bolt Again\n",
	)
	res, err := svc.ImportCustomers(file, 1, "")
	if err != nil {
		t.Fatalf("import customers: %v", err)
	}

	if res.Created != 1 {
		t.Fatalf("created = %d, want 1", res.Created)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(res.Errors), res.Errors)
	}
	for _, rowErr := range res.Errors {
		if !strings.Contains(rowErr.Message, "already exists") {
			t.Errorf("row %d message = %q, want a duplicate-code rejection", rowErr.Row, rowErr.Message)
		}
	}
	if !strings.Contains(res.Errors[0].Message, `"ACME"`) {
		t.Errorf("message should name the offending code: %q", res.Errors[0].Message)
	}

	var count int64
	if err := db.Model(&domain.Customer{}).Where("code = ?", "BOLT").Count(&count).Error; err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 1 {
		t.Fatalf("BOLT stored %d times, want 1", count)
	}
}

func TestImportCustomersRejectsMissingColumnBeforeAnyRow(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	file := strings.NewReader("code,contact_email\nACME,ops@acme.example\n")
	_, err := svc.ImportCustomers(file, 1, "")
	var verr *helper.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want validation error", err)
	}

	var count int64
	if err := db.Model(&domain.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d customers created from a rejected file", count)
	}
}

func TestImportProductsEnforcesCustomerAndSKURules(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	acme := &domain.Customer{Code: "ACME", Name: "Acme Corp", IsActive: true}
	bolt := &domain.Customer{Code: "BOLT", Name: "Bolt Ltd", IsActive: true}
	for _, c := range []*domain.Customer{acme, bolt} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}

	file := strings.NewReader(
		"customer_code,sku,name,unit_value\n" +
			"ACME,WID-1,Widget,12.50\n" +
			"BOLT,WID-1,Widget,9.00\n" + // same sku, different customer: fine
			"ACME,WID-1,Widget Again,\n" + // same sku, same customer: rejected
			"NOPE,WID-2,Ghost Widget,\n" +
			"ACME,WID-3,Cheap Widget,-1\n",
	)
	res, err := svc.ImportProducts(file, 1, "")
	if err != nil {
		t.Fatalf("import products: %v", err)
	}

	if res.Created != 2 {
		t.Fatalf("created = %d, want 2", res.Created)
	}
	if len(res.Errors) != 3 {
		t.Fatalf("got %d errors, want 3: %+v", len(res.Errors), res.Errors)
	}
	wantMessages := map[int]string{
		4: `sku "WID-1" already exists for customer "ACME"`,
		5: `customer "NOPE" not found`,
		6: "unit_value must be a non-negative number",
	}
	for _, rowErr := range res.Errors {
		if want := wantMessages[rowErr.Row]; rowErr.Message != want {
			t.Errorf("row %d message = %q, want %q", rowErr.Row, rowErr.Message, want)
		}
	}

	var ghosts int64
	if err := db.Model(&domain.Product{}).Where("sku = ?", "WID-2").Count(&ghosts).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if ghosts != 0 {
		t.Error("product created for an unknown customer")
	}
}

func TestImportUsersHashesPasswordsAndForcesRotation(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	file := strings.NewReader(
		"email,username,password,display_name,role\n" +
			"Jo@Example.com,jo,hunter22,Jo,admin\n",
	)
	res, err := svc.ImportUsers(file, 1, "")
	if err != nil {
		t.Fatalf("import users: %v", err)
	}
	if res.Created != 1 || len(res.Errors) != 0 {
		t.Fatalf("created = %d, errors = %+v, want a clean single-row import", res.Created, res.Errors)
	}

	var user domain.User
	if err := db.Where("email = ?", "jo@example.com").First(&user).Error; err != nil {
		t.Fatalf("lookup imported user: %v", err)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if !user.MustChangePassword {
		t.Error("imported user should be forced to rotate the password")
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", user.Role)
	}
}

func TestImportUsersRejectsDuplicates(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	if err := db.Create(&domain.User{
		Email:        "jo@example.com",
		Username:     "jo",
		PasswordHash: "x",
		Role:         domain.RoleStaff,
		Status:       "active",
	}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	file := strings.NewReader(
		"email,username,password\n" +
			"jo@example.com,jo2,secret99\n" +
			"jo2@example.com,jo,secret99\n" +
			"bad-email,jo3,secret99\n" +
			"jo4@example.com,jo4,short\n",
	)
	res, err := svc.ImportUsers(file, 1, "")
	if err != nil {
		t.Fatalf("import users: %v", err)
	}

	if res.Created != 0 {
		t.Fatalf("created = %d, want 0", res.Created)
	}
	if len(res.Errors) != 4 {
		t.Fatalf("got %d errors, want 4: %+v", len(res.Errors), res.Errors)
	}
	if want := `email "jo@example.com" already exists`; res.Errors[0].Message != want {
		t.Errorf("row 2 message = %q, want %q", res.Errors[0].Message, want)
	}
	if want := `username "jo" already exists`; res.Errors[1].Message != want {
		t.Errorf("row 3 message = %q, want %q", res.Errors[1].Message, want)
	}
}

func TestImportLocationsUpsertsByCode(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	first := strings.NewReader("code,zone,aisle,rack\nA-01-01,A,01,01\n")
	res, err := svc.ImportLocations(first, 1, "")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("created = %d, want 1", res.Created)
	}

	// re-import with the same code updates in place
	second := strings.NewReader("code,zone,aisle,rack\na-01-01,B,02,03\n")
	res, err = svc.ImportLocations(second, 1, "")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Created != 1 || len(res.Errors) != 0 {
		t.Fatalf("re-import: created = %d, errors = %+v", res.Created, res.Errors)
	}

	var locations []domain.WarehouseLocation
	if err := db.Find(&locations).Error; err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1 after upsert", len(locations))
	}
	if locations[0].Zone != "B" || locations[0].Aisle != "02" || locations[0].Rack != "03" {
		t.Errorf("location not updated: %+v", locations[0])
	}
}

func TestImportRowValuesAreEchoedBack(t *testing.T) {
	db := setupDB(t)
	svc := newImportService(t, db)

	file := strings.NewReader("code,name\nACME,\n")
	res, err := svc.ImportCustomers(file, 1, "")
	if err != nil {
		t.Fatalf("import customers: %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(res.Errors))
	}
	if got := res.Errors[0].Values["code"]; got != "ACME" {
		t.Errorf("echoed code = %q, want ACME", got)
	}
}

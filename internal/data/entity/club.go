package entity

type Club struct {
	Base
	Name          string  `db:"name"`
	Address       *string `db:"address"`
	City          *string `db:"city"`
	State         *string `db:"state"`
	ZipCode       *string `db:"zip_code"`
	Phone         *string `db:"phone"`
	Email         *string `db:"email"`
	LicenseNumber *string `db:"license_number"`
	IsActive      bool    `db:"is_active"`
}

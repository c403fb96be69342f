package db

// SeedVehicles is the initial fleet loaded at process start. IDs are left
// blank so the repository assigns them on save; catalog order is the order
// listed here.
func SeedVehicles() []Vehicle {
	return []Vehicle{
		{LicensePlate: "ABC123", VehicleType: VehicleTypeSedan, Brand: "Toyota", Model: "Camry", Year: 2022},
		{LicensePlate: "DEF456", VehicleType: VehicleTypeSedan, Brand: "Honda", Model: "Accord", Year: 2023},
		{LicensePlate: "GHI789", VehicleType: VehicleTypeSedan, Brand: "BMW", Model: "320i", Year: 2022},

		{LicensePlate: "JKL012", VehicleType: VehicleTypeSUV, Brand: "Toyota", Model: "RAV4", Year: 2023},
		{LicensePlate: "MNO345", VehicleType: VehicleTypeSUV, Brand: "Honda", Model: "CR-V", Year: 2022},
		{LicensePlate: "PQR678", VehicleType: VehicleTypeSUV, Brand: "BMW", Model: "X3", Year: 2023},

		{LicensePlate: "STU901", VehicleType: VehicleTypeVan, Brand: "Ford", Model: "Transit", Year: 2022},
		{LicensePlate: "VWX234", VehicleType: VehicleTypeVan, Brand: "Mercedes", Model: "Sprinter", Year: 2023},
	}
}

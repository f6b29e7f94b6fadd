package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// VehicleRepository handles database operations for the vehicles table.
// Mutations are scoped to the owning owner or driver in the WHERE clause:
// a caller who does not own the row updates nothing and gets ErrNotFound.
type VehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create inserts a new vehicle with status available
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			vehicle_id, owner_id, driver_id, vehicle_type, model,
			capacity_passengers, capacity_luggage, fuel_type, license_plate,
			price_per_km, price_per_hour, image_url, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'available', NOW()
		)
		RETURNING status, created_at
	`

	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		vehicle.ID, vehicle.OwnerID, vehicle.DriverID, vehicle.VehicleType, vehicle.Model,
		vehicle.CapacityPassengers, vehicle.CapacityLuggage, vehicle.FuelType, vehicle.LicensePlate,
		vehicle.PricePerKm, vehicle.PricePerHour, vehicle.ImageURL,
	).Scan(&vehicle.Status, &vehicle.CreatedAt)
}

// GetByID retrieves a vehicle by id
func (r *VehicleRepository) GetByID(vehicleID uuid.UUID) (*models.Vehicle, error) {
	query := selectVehicle + ` WHERE vehicle_id = $1`

	vehicle, err := r.scanVehicle(r.db.QueryRow(query, vehicleID))
	if err != nil {
		return nil, translateError(err)
	}
	return vehicle, nil
}

// ListByOwner retrieves all vehicles belonging to an owner, newest first
func (r *VehicleRepository) ListByOwner(ownerID uuid.UUID) ([]models.Vehicle, error) {
	query := selectVehicle + ` WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.listVehicles(query, ownerID)
}

// ListByDriver retrieves all vehicles assigned to a driver, newest first
func (r *VehicleRepository) ListByDriver(driverID uuid.UUID) ([]models.Vehicle, error) {
	query := selectVehicle + ` WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.listVehicles(query, driverID)
}

// UpdateByOwner updates a vehicle's editable fields, scoped to its owner
func (r *VehicleRepository) UpdateByOwner(vehicleID, ownerID uuid.UUID, update models.VehicleUpdate) (*models.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET model = $1, price_per_km = $2, price_per_hour = $3,
			status = COALESCE(NULLIF($4, ''), status), updated_at = NOW()
		WHERE vehicle_id = $5 AND owner_id = $6
		RETURNING ` + vehicleColumns

	vehicle, err := r.scanVehicle(r.db.QueryRow(
		query, update.Model, update.PricePerKm, update.PricePerHour, update.Status, vehicleID, ownerID,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return vehicle, nil
}

// UpdateByDriver updates a vehicle's editable fields, scoped to its driver
func (r *VehicleRepository) UpdateByDriver(vehicleID, driverID uuid.UUID, update models.VehicleUpdate) (*models.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET model = $1, price_per_km = $2, price_per_hour = $3,
			status = COALESCE(NULLIF($4, ''), status), updated_at = NOW()
		WHERE vehicle_id = $5 AND driver_id = $6
		RETURNING ` + vehicleColumns

	vehicle, err := r.scanVehicle(r.db.QueryRow(
		query, update.Model, update.PricePerKm, update.PricePerHour, update.Status, vehicleID, driverID,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return vehicle, nil
}

// DeleteByOwner removes a vehicle, scoped to its owner
func (r *VehicleRepository) DeleteByOwner(vehicleID, ownerID uuid.UUID) error {
	return r.deleteScoped(`DELETE FROM vehicles WHERE vehicle_id = $1 AND owner_id = $2`, vehicleID, ownerID)
}

// DeleteByDriver removes a vehicle, scoped to its driver
func (r *VehicleRepository) DeleteByDriver(vehicleID, driverID uuid.UUID) error {
	return r.deleteScoped(`DELETE FROM vehicles WHERE vehicle_id = $1 AND driver_id = $2`, vehicleID, driverID)
}

// Delete removes a vehicle without an ownership scope (admin only)
func (r *VehicleRepository) Delete(vehicleID uuid.UUID) error {
	return r.deleteScoped(`DELETE FROM vehicles WHERE vehicle_id = $1`, vehicleID)
}

// ListAll retrieves every vehicle with owner/driver display names (admin view)
func (r *VehicleRepository) ListAll() ([]models.VehicleAdminView, error) {
	query := `
		SELECT v.vehicle_id, v.owner_id, v.driver_id, v.vehicle_type, v.model,
			   v.capacity_passengers, v.capacity_luggage, v.fuel_type, v.license_plate,
			   v.price_per_km, v.price_per_hour, v.status, v.image_url,
			   v.created_at, v.updated_at,
			   o.full_name AS owner_name, d.full_name AS driver_name
		FROM vehicles v
		LEFT JOIN owners o ON v.owner_id = o.owner_id
		LEFT JOIN drivers d ON v.driver_id = d.driver_id
		ORDER BY v.created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.VehicleAdminView{}
	for rows.Next() {
		var v models.VehicleAdminView
		var driverID sql.NullString
		err := rows.Scan(
			&v.ID, &v.OwnerID, &driverID, &v.VehicleType, &v.Model,
			&v.CapacityPassengers, &v.CapacityLuggage, &v.FuelType, &v.LicensePlate,
			&v.PricePerKm, &v.PricePerHour, &v.Status, &v.ImageURL,
			&v.CreatedAt, &v.UpdatedAt,
			&v.OwnerName, &v.DriverName,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			v.DriverID = &id
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

const vehicleColumns = `vehicle_id, owner_id, driver_id, vehicle_type, model,
			capacity_passengers, capacity_luggage, fuel_type, license_plate,
			price_per_km, price_per_hour, status, image_url, created_at, updated_at`

const selectVehicle = `SELECT ` + vehicleColumns + ` FROM vehicles`

func (r *VehicleRepository) deleteScoped(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) scanVehicle(row *sql.Row) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	var driverID sql.NullString

	err := row.Scan(
		&vehicle.ID, &vehicle.OwnerID, &driverID, &vehicle.VehicleType, &vehicle.Model,
		&vehicle.CapacityPassengers, &vehicle.CapacityLuggage, &vehicle.FuelType, &vehicle.LicensePlate,
		&vehicle.PricePerKm, &vehicle.PricePerHour, &vehicle.Status, &vehicle.ImageURL,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		id, err := uuid.Parse(driverID.String)
		if err != nil {
			return nil, err
		}
		vehicle.DriverID = &id
	}
	return vehicle, nil
}

func (r *VehicleRepository) listVehicles(query string, args ...interface{}) ([]models.Vehicle, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		var driverID sql.NullString
		err := rows.Scan(
			&v.ID, &v.OwnerID, &driverID, &v.VehicleType, &v.Model,
			&v.CapacityPassengers, &v.CapacityLuggage, &v.FuelType, &v.LicensePlate,
			&v.PricePerKm, &v.PricePerHour, &v.Status, &v.ImageURL,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			v.DriverID = &id
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

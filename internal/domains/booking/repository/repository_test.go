package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"travelbook/infras/otel/mocks"
	"travelbook/infras/postgres"
	"travelbook/internal/domains/booking/model"
	"travelbook/internal/domains/booking/repository"
	serviceRepository "travelbook/internal/domains/service/repository"
	"travelbook/shared"
	"travelbook/shared/failure"
	gModel "travelbook/shared/model"
	"travelbook/shared/timezone"
)

const ledgerSchema = `
CREATE TABLE users (
    id VARCHAR(255) PRIMARY KEY,
    email VARCHAR(255) UNIQUE,
    first_name VARCHAR(255),
    last_name VARCHAR(255),
    profile_image_url VARCHAR(512),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    modified_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE services (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    type VARCHAR(50) NOT NULL,
    description TEXT,
    location VARCHAR(255) NOT NULL,
    price DECIMAL(10,2) NOT NULL,
    rating DECIMAL(3,2),
    total_reviews INTEGER NOT NULL DEFAULT 0,
    images JSONB NOT NULL DEFAULT '[]',
    amenities JSONB NOT NULL DEFAULT '[]',
    availability INTEGER NOT NULL DEFAULT 0 CHECK (availability >= 0),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    check_in_time VARCHAR(10),
    check_out_time VARCHAR(10),
    departure_time VARCHAR(10),
    arrival_time VARCHAR(10),
    route VARCHAR(255),
    duration VARCHAR(50),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    modified_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE bookings (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL REFERENCES users (id),
    service_id INTEGER NOT NULL REFERENCES services (id),
    status VARCHAR(50) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
    check_in_date DATE,
    check_out_date DATE,
    guests INTEGER NOT NULL DEFAULT 1 CHECK (guests BETWEEN 1 AND 20),
    total_price DECIMAL(10,2) NOT NULL,
    booking_details JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    modified_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

func setupLedgerDB(t *testing.T) (*postgres.Connection, *sqlx.DB) {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "travelbook",
				"POSTGRES_PASSWORD": "travelbook",
				"POSTGRES_DB":       "travelbook",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://travelbook:travelbook@%s:%s/travelbook?sslmode=disable", host, port.Port())

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	db.MustExec(ledgerSchema)

	return &postgres.Connection{Read: db, Write: db}, db
}

func seedUser(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()

	db.MustExec("INSERT INTO users (id, email) VALUES ($1, $2)", id, id+"@example.com")
}

func seedService(t *testing.T, db *sqlx.DB, name string, availability int, active bool) int64 {
	t.Helper()

	var id int64

	err := db.Get(
		&id,
		`INSERT INTO services (name, type, location, price, availability, is_active)
		 VALUES ($1, 'hotel', 'New York', 89.00, $2, $3) RETURNING id`,
		name, availability, active,
	)
	require.NoError(t, err)

	return id
}

func availabilityOf(t *testing.T, db *sqlx.DB, serviceID int64) int {
	t.Helper()

	var availability int

	err := db.Get(&availability, "SELECT availability FROM services WHERE id = $1", serviceID)
	require.NoError(t, err)

	return availability
}

func bookingCount(t *testing.T, db *sqlx.DB, serviceID int64) int {
	t.Helper()

	var count int

	err := db.Get(&count, "SELECT COUNT(id) FROM bookings WHERE service_id = $1", serviceID)
	require.NoError(t, err)

	return count
}

func newBooking(userID string, serviceID int64) model.Booking {
	now := timezone.Now()

	return model.Booking{
		UserID:     userID,
		ServiceID:  serviceID,
		Status:     model.StatusConfirmed,
		Guests:     2,
		TotalPrice: "178.00",
		Metadata:   gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	}
}

func TestBookingRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	conn, db := setupLedgerDB(t)

	mockOtel := mocks.NewOtel()
	serviceRepo := serviceRepository.New(conn, mockOtel)
	bookingRepo := repository.New(conn, serviceRepo, mockOtel)

	ctx := context.Background()

	seedUser(t, db, "user-1")
	seedUser(t, db, "user-2")

	t.Run("create books a unit and snapshots the service", func(t *testing.T) {
		serviceID := seedService(t, db, "Grand Plaza Hotel", 2, true)

		created, err := bookingRepo.Create(ctx, newBooking("user-1", serviceID))
		require.NoError(t, err)
		assert.Greater(t, created.ID, int64(0))
		assert.Equal(t, model.StatusConfirmed, created.Status)
		assert.Equal(t, 1, availabilityOf(t, db, serviceID))

		var snapshot model.ServiceSnapshot

		require.NoError(t, json.Unmarshal(created.BookingDetails, &snapshot))
		assert.Equal(t, "Grand Plaza Hotel", snapshot.ServiceName)
		assert.Equal(t, "89.00", snapshot.UnitPrice)

		stored, err := bookingRepo.Get(ctx, shared.FilterByID(created.ID, model.FieldID, model.TableName))
		require.NoError(t, err)
		assert.Equal(t, created.ID, stored.ID)
		require.NotNil(t, stored.ServiceName)
		assert.Equal(t, "Grand Plaza Hotel", *stored.ServiceName)
	})

	t.Run("exhausted service rejects the booking without a row", func(t *testing.T) {
		serviceID := seedService(t, db, "Boutique Inn", 0, true)

		_, err := bookingRepo.Create(ctx, newBooking("user-1", serviceID))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, 0, availabilityOf(t, db, serviceID))
		assert.Equal(t, 0, bookingCount(t, db, serviceID))
	})

	t.Run("inactive service rejects the booking", func(t *testing.T) {
		serviceID := seedService(t, db, "Closed Hotel", 5, false)

		_, err := bookingRepo.Create(ctx, newBooking("user-1", serviceID))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, 5, availabilityOf(t, db, serviceID))
	})

	t.Run("failed insert rolls back the decrement", func(t *testing.T) {
		serviceID := seedService(t, db, "City Center Hotel", 3, true)

		// The unknown user violates the foreign key after the counter row
		// is already locked, so the whole transaction must roll back.
		_, err := bookingRepo.Create(ctx, newBooking("ghost-user", serviceID))
		require.Error(t, err)
		assert.Equal(t, 3, availabilityOf(t, db, serviceID))
		assert.Equal(t, 0, bookingCount(t, db, serviceID))
	})

	t.Run("concurrent bookings of the last unit have one winner", func(t *testing.T) {
		serviceID := seedService(t, db, "Luxury Liner", 1, true)

		const attempts = 4

		errs := make([]error, attempts)

		var wg sync.WaitGroup

		for i := range attempts {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, errs[i] = bookingRepo.Create(ctx, newBooking("user-1", serviceID))
			}()
		}

		wg.Wait()

		winners, conflicts := 0, 0

		for _, err := range errs {
			switch {
			case err == nil:
				winners++
			case failure.GetCode(err) == http.StatusConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, winners)
		assert.Equal(t, attempts-1, conflicts)
		assert.Equal(t, 0, availabilityOf(t, db, serviceID))
		assert.Equal(t, 1, bookingCount(t, db, serviceID))
	})

	t.Run("cancel restores availability exactly once", func(t *testing.T) {
		serviceID := seedService(t, db, "Express Bus Lines", 1, true)

		created, err := bookingRepo.Create(ctx, newBooking("user-1", serviceID))
		require.NoError(t, err)
		require.Equal(t, 0, availabilityOf(t, db, serviceID))

		cancelled, err := bookingRepo.Cancel(ctx, created.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)
		assert.Equal(t, 1, availabilityOf(t, db, serviceID))

		again, err := bookingRepo.Cancel(ctx, created.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, again.Status)
		assert.Equal(t, 1, availabilityOf(t, db, serviceID))
	})

	t.Run("cancel by another user reports not found", func(t *testing.T) {
		serviceID := seedService(t, db, "Comfort Coach", 2, true)

		created, err := bookingRepo.Create(ctx, newBooking("user-1", serviceID))
		require.NoError(t, err)
		require.Equal(t, 1, availabilityOf(t, db, serviceID))

		_, err = bookingRepo.Cancel(ctx, created.ID, "user-2")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, 1, availabilityOf(t, db, serviceID))

		stored, err := bookingRepo.Get(ctx, shared.FilterByID(created.ID, model.FieldID, model.TableName))
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, stored.Status)
	})
}

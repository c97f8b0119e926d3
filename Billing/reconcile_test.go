package Billing

import (
	"testing"

	"PalkhiTrans/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func rvID(id uint) *uint { return &id }

func TestReconcileAssignedUsesRequestedQuote(t *testing.T) {
	booking := &Models.Booking{
		RequestedVehicles: []Models.RequestedVehicle{
			{
				Model: gorm.Model{ID: 11}, Brand: "Toyota", ModelName: "Innova",
				RateType: "per_km", RatePerKm: d(14), DriverAllowancePerDay: d(300),
			},
		},
		AssignedVehicles: []Models.AssignedVehicle{
			{Model: gorm.Model{ID: 21}, NoPlate: "GJ-01-AB-1234", DriverName: "Mahesh", RequestedVehicleID: rvID(11)},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 1)
	assert.Equal(t, "GJ-01-AB-1234", sources[0].VehicleName)
	assert.Equal(t, "Mahesh", sources[0].DriverName)
	assert.Equal(t, RatePerKm, sources[0].Quote.Kind())
	assert.True(t, sources[0].AllowancePerDay.Equal(d(300)))
}

func TestReconcileAssignedSynthesizesFromOverride(t *testing.T) {
	booking := &Models.Booking{
		AssignedVehicles: []Models.AssignedVehicle{
			{
				Model: gorm.Model{ID: 22}, NoPlate: "GJ-05-CD-5678",
				RateType: "per_day", RatePerDay: d(2500),
			},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 1)
	assert.Equal(t, RatePerDay, sources[0].Quote.Kind())
	// Assigned records never carry a driver allowance
	assert.True(t, sources[0].AllowancePerDay.IsZero())
}

func TestReconcileSkipsUnpriceableVehicle(t *testing.T) {
	booking := &Models.Booking{
		RequestedVehicles: []Models.RequestedVehicle{
			{Model: gorm.Model{ID: 11}, RateType: "total", RateTotal: d(8000)},
		},
		AssignedVehicles: []Models.AssignedVehicle{
			{Model: gorm.Model{ID: 21}, NoPlate: "GJ-01-AB-1234", RequestedVehicleID: rvID(11)},
			// No requested link, no override rates: silently omitted
			{Model: gorm.Model{ID: 22}, NoPlate: "GJ-02-XY-0000"},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 1)
	assert.Equal(t, "GJ-01-AB-1234", sources[0].NoPlate)
}

func TestReconcileDanglingLinkFallsBackToOverride(t *testing.T) {
	booking := &Models.Booking{
		AssignedVehicles: []Models.AssignedVehicle{
			{
				Model: gorm.Model{ID: 23}, NoPlate: "GJ-07-EF-9012",
				RequestedVehicleID: rvID(99), // no such requested record
				RateType:           "total", RateTotal: d(6000),
			},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 1)
	assert.Equal(t, RateTotal, sources[0].Quote.Kind())
}

func TestReconcileNoAssignedBillsAllRequested(t *testing.T) {
	booking := &Models.Booking{
		RequestedVehicles: []Models.RequestedVehicle{
			{Model: gorm.Model{ID: 11}, Brand: "Toyota", ModelName: "Innova", RateType: "per_day", RatePerDay: d(3000)},
			{Model: gorm.Model{ID: 12}, Brand: "Maruti", ModelName: "Ertiga", RateType: "total", RateTotal: d(7000)},
			// Unpriced requested vehicle is omitted too
			{Model: gorm.Model{ID: 13}, Brand: "Tata", ModelName: "Winger"},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 2)
	// Identity becomes brand + model since no physical unit was assigned
	assert.Equal(t, "Toyota Innova", sources[0].VehicleName)
	assert.Equal(t, "Maruti Ertiga", sources[1].VehicleName)
	assert.Empty(t, sources[0].NoPlate)
}

func TestReconcilePreservesInsertionOrder(t *testing.T) {
	booking := &Models.Booking{
		RequestedVehicles: []Models.RequestedVehicle{
			{Model: gorm.Model{ID: 11}, RateType: "total", RateTotal: d(1000)},
			{Model: gorm.Model{ID: 12}, RateType: "total", RateTotal: d(2000)},
		},
		AssignedVehicles: []Models.AssignedVehicle{
			{Model: gorm.Model{ID: 21}, NoPlate: "FIRST", RequestedVehicleID: rvID(11)},
			{Model: gorm.Model{ID: 22}, NoPlate: "SECOND", RequestedVehicleID: rvID(12)},
		},
	}

	sources := ResolveBillSources(booking)
	require.Len(t, sources, 2)
	assert.Equal(t, "FIRST", sources[0].NoPlate)
	assert.Equal(t, "SECOND", sources[1].NoPlate)
}

package Billing

import (
	"strings"

	"PalkhiTrans/Models"

	"github.com/shopspring/decimal"
)

// BillSource is one vehicle resolved to a rate-bearing record, ready to be
// priced.
type BillSource struct {
	VehicleName     string
	NoPlate         string
	DriverName      string
	Quote           RateQuote
	AllowancePerDay decimal.Decimal
}

// ResolveBillSources decides which vehicle records to bill for a booking.
//
// Per assigned vehicle, in the order vehicles were assigned:
//  1. use the linked requested-vehicle record's quote and driver allowance;
//  2. otherwise, if the assigned record carries its own rate fields,
//     synthesize a quote from them (assigned records never carry allowance);
//  3. otherwise skip the vehicle — it cannot be priced, and the bill simply
//     omits its line.
//
// When no vehicles were assigned at all, every requested vehicle is billed
// directly; its identity becomes "brand model" since no physical unit exists.
//
// Standalone bills never reach this function; the caller supplies manual
// vehicle+quote pairs directly.
func ResolveBillSources(booking *Models.Booking) []BillSource {
	if len(booking.AssignedVehicles) == 0 {
		sources := make([]BillSource, 0, len(booking.RequestedVehicles))
		for _, rv := range booking.RequestedVehicles {
			quote, ok := QuoteFromFields(rv.RateType, rv.RateTotal, rv.RatePerDay, rv.RatePerKm)
			if !ok {
				continue
			}
			sources = append(sources, BillSource{
				VehicleName:     requestedVehicleName(rv),
				Quote:           quote,
				AllowancePerDay: rv.DriverAllowancePerDay,
			})
		}
		return sources
	}

	requestedByID := make(map[uint]Models.RequestedVehicle, len(booking.RequestedVehicles))
	for _, rv := range booking.RequestedVehicles {
		requestedByID[rv.ID] = rv
	}

	sources := make([]BillSource, 0, len(booking.AssignedVehicles))
	for _, av := range booking.AssignedVehicles {
		source := BillSource{
			VehicleName: av.NoPlate,
			NoPlate:     av.NoPlate,
			DriverName:  av.DriverName,
		}

		if av.RequestedVehicleID != nil {
			if rv, ok := requestedByID[*av.RequestedVehicleID]; ok {
				if quote, ok := QuoteFromFields(rv.RateType, rv.RateTotal, rv.RatePerDay, rv.RatePerKm); ok {
					source.Quote = quote
					source.AllowancePerDay = rv.DriverAllowancePerDay
					sources = append(sources, source)
					continue
				}
			}
		}

		// No usable requested record; fall back to the assigned vehicle's own
		// override rate fields.
		if quote, ok := QuoteFromFields(av.RateType, av.RateTotal, av.RatePerDay, av.RatePerKm); ok {
			source.Quote = quote
			sources = append(sources, source)
			continue
		}

		// Neither source exists; the vehicle is silently omitted.
	}
	return sources
}

func requestedVehicleName(rv Models.RequestedVehicle) string {
	name := strings.TrimSpace(rv.Brand + " " + rv.ModelName)
	if name == "" {
		return "Requested vehicle"
	}
	return name
}

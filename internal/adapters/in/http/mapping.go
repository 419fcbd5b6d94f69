package http

import (
	"strconv"

	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/generated/servers"
)

func packageFromDomain(p *parcel.Package) servers.Package {
	d := p.Details()
	dims := d.Dimensions()
	return servers.Package{
		Id:             p.ID().String(),
		ClientId:       p.ClientID().String(),
		TrackingNumber: p.Tracking().Number(),
		PublicCode:     p.Tracking().PublicCode(),
		Description:    d.Description(),
		Weight:         d.Weight().String(),
		Length:         dims.Length().String(),
		Width:          dims.Width().String(),
		Height:         dims.Height().String(),
		DeclaredValue:  d.DeclaredValue().String(),
		Origin:         p.Route().Origin().String(),
		Destination:    p.Route().Destination().String(),
		Status:         p.Status().String(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
		Version:        p.Version(),
	}
}

func packageFromView(v queries.PackageView) servers.Package {
	return servers.Package{
		Id:             v.ID.String(),
		ClientId:       v.ClientID.String(),
		TrackingNumber: v.TrackingNumber,
		PublicCode:     v.PublicCode,
		Description:    v.Description,
		Weight:         v.Weight.String(),
		Length:         v.Length.String(),
		Width:          v.Width.String(),
		Height:         v.Height.String(),
		DeclaredValue:  v.DeclaredValue.String(),
		Origin:         v.Origin,
		Destination:    v.Destination,
		Status:         v.Status,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Version:        v.Version,
	}
}

func shipmentFromDomain(s *shipment.Shipment) servers.Shipment {
	var founding *string
	if id, ok := s.Founding(); ok {
		founding = idString(&id)
	}
	return servers.Shipment{
		Id:                s.ID().String(),
		Origin:            s.Route().Origin().String(),
		Destination:       s.Route().Destination().String(),
		Status:            s.Status().String(),
		EstimatedDelivery: s.EstimatedDelivery(),
		DeliveredAt:       s.DeliveredAt(),
		FoundingPackageId: founding,
		PackageIds:        idStrings(s.Members()),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
		Version:           s.Version(),
	}
}

func shipmentFromView(v queries.ShipmentView) servers.Shipment {
	return servers.Shipment{
		Id:                v.ID.String(),
		Origin:            v.Origin,
		Destination:       v.Destination,
		Status:            v.Status,
		EstimatedDelivery: v.EstimatedDelivery,
		DeliveredAt:       v.DeliveredAt,
		FoundingPackageId: idString(v.FoundingPackageID),
		PackageIds:        idStrings(v.PackageIDs),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
		Version:           v.Version,
	}
}

func historyFromView(v queries.HistoryEntryView) servers.HistoryEntry {
	return servers.HistoryEntry{
		Id:             strconv.FormatInt(v.ID, 10),
		PackageId:      v.PackageID.String(),
		PreviousStatus: v.PreviousStatus,
		NewStatus:      v.NewStatus,
		Comment:        v.Comment,
		ActorId:        idString(v.ActorID),
		RecordedAt:     v.RecordedAt,
	}
}

func overdueFromView(v queries.OverdueShipmentView) servers.OverdueShipment {
	return servers.OverdueShipment{
		Id:                v.ID.String(),
		Origin:            v.Origin,
		Destination:       v.Destination,
		EstimatedDelivery: v.EstimatedDelivery.UTC(),
		PackageCount:      v.PackageCount,
	}
}

func idString(id *kernel.ID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func idStrings(ids []kernel.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

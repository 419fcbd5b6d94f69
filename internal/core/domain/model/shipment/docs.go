// Package shipment models the shipment aggregate and its status state machine.
//
// A shipment owns its membership: the ordered set of package ids it carries.
// Status changes on the shipment are fanned out to member packages by the
// domain services package; this package only decides whether the shipment
// itself may change.
package shipment

package http

import (
	"github.com/courtwala/courtwala-backend/internal/dashboard"
)

type AdminOverviewResponse struct {
	Users          map[string]int `json:"users"`
	UserStatuses   map[string]int `json:"userStatuses"`
	Courts         map[string]int `json:"courts"`
	Bookings       map[string]int `json:"bookings"`
	PendingReports int            `json:"pendingReports"`
}

type OwnerOverviewResponse struct {
	Courts   int            `json:"courts"`
	Bookings map[string]int `json:"bookings"`
	Revenue  float64        `json:"revenue"`
}

func NewAdminOverviewResponse(o *dashboard.AdminOverview) AdminOverviewResponse {
	resp := AdminOverviewResponse{
		Users:          make(map[string]int, len(o.UsersByRole)),
		UserStatuses:   make(map[string]int, len(o.UsersByStatus)),
		Courts:         make(map[string]int, len(o.CourtsByStatus)),
		Bookings:       make(map[string]int, len(o.BookingsByStatus)),
		PendingReports: o.PendingReports,
	}
	for role, n := range o.UsersByRole {
		resp.Users[string(role)] = n
	}
	for status, n := range o.UsersByStatus {
		resp.UserStatuses[string(status)] = n
	}
	for status, n := range o.CourtsByStatus {
		resp.Courts[string(status)] = n
	}
	for status, n := range o.BookingsByStatus {
		resp.Bookings[string(status)] = n
	}
	return resp
}

func NewOwnerOverviewResponse(o *dashboard.OwnerOverview) OwnerOverviewResponse {
	resp := OwnerOverviewResponse{
		Courts:   o.Courts,
		Bookings: make(map[string]int, len(o.Bookings)),
		Revenue:  o.Revenue,
	}
	for _, sc := range o.Bookings {
		resp.Bookings[string(sc.Status)] = sc.Count
	}
	return resp
}

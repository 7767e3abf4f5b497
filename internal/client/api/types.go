package api

import (
	"io"
	"time"
)

type StatusChange struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Comment string    `json:"comment"`
	Author  string    `json:"author"`
	At      time.Time `json:"at"`
}

// Order is a work order as the backend returns it.
type Order struct {
	ID                 int64          `json:"id"`
	Plate              string         `json:"plate"`
	LocationID         int64          `json:"location_id"`
	Date               string         `json:"date"`
	Time               string         `json:"time,omitempty"`
	Status             string         `json:"status"`
	AllowedTransitions []string       `json:"allowed_transitions,omitempty"`
	Description        string         `json:"description,omitempty"`
	MechanicRUT        string         `json:"mechanic_rut,omitempty"`
	CreatorRUT         string         `json:"creator_rut,omitempty"`
	DriverRUT          string         `json:"driver_rut,omitempty"`
	ExitDate           string         `json:"exit_date,omitempty"`
	History            []StatusChange `json:"history,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type Slot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

type Employee struct {
	RUT        string `json:"rut"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	RoleLabel  string `json:"role_label"`
	Username   string `json:"username"`
	WorkshopID int64  `json:"workshop_id"`
	Region     string `json:"region,omitempty"`
	Schedule   string `json:"schedule,omitempty"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Employee  Employee  `json:"employee"`
}

type Vehicle struct {
	Plate    string `json:"plate"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year,omitempty"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`
}

type KPIs struct {
	Orders    int    `json:"ots"`
	Incidents int    `json:"incidents"`
	Loans     int    `json:"loans"`
	Key       string `json:"key"`
}

// Ficha is the vehicle record summary. Vehicle is nil for plates the fleet
// does not know yet.
type Ficha struct {
	Plate        string   `json:"plate"`
	Vehicle      *Vehicle `json:"vehicle"`
	KPIs         KPIs     `json:"kpis"`
	CurrentOrder *Order   `json:"current_order"`
}

type HistoryFilter struct {
	Plate    string
	From     string
	To       string
	Status   string
	Location int64
}

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	OrderID   *int64    `json:"order_id"`
	Plate     string    `json:"plate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentUpload struct {
	File     io.Reader
	FileName string
	Title    string
	Type     string
	OrderID  *int64
	Plate    string
}

type Summary struct {
	From               string `json:"from"`
	To                 string `json:"to"`
	VehiclesTotal      int    `json:"vehicles_total"`
	VehiclesInWorkshop int    `json:"vehicles_in_workshop"`
	ActiveOrders       int    `json:"active_orders"`
	ActiveEmployees    int    `json:"active_employees"`
}

type OrderRow struct {
	Order
	DurationDays *int `json:"duration_days"`
}

type OrdersFilter struct {
	From       string
	To         string
	Plate      string
	Status     string
	LocationID int64
	Creator    string
}

type Global struct {
	From        string         `json:"from"`
	To          string         `json:"to"`
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	AverageDays float64        `json:"average_days"`
}

type WorkshopStats struct {
	WorkshopID    int64  `json:"workshop_id"`
	Name          string `json:"name"`
	VehiclesTotal int    `json:"vehicles_total"`
	Pending       int    `json:"pending"`
	InProcess     int    `json:"in_process"`
	Finalized     int    `json:"finalized"`
}

type WorkshopAverage struct {
	WorkshopID int64   `json:"workshop_id"`
	Name       string  `json:"name"`
	Orders     int     `json:"orders"`
	Days       float64 `json:"days"`
}

type AverageTimes struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	GlobalDays float64           `json:"global_days"`
	ByWorkshop []WorkshopAverage `json:"by_workshop"`
}

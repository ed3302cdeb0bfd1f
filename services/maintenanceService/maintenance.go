// Package maintenanceService implements the maintenance ticket lifecycle:
// creation by students, assignment by admins and status updates by the
// assigned technician.
//
// Every operation takes the acting user's id as resolved from the session
// token. Ownership is checked here, on top of the role gate in the router: a
// student only touches tickets they created, a technician only tickets
// assigned to them.
package maintenanceService

import (
	"context"
	"dormaid/models"
	"dormaid/utils"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	notifier utils.Notifier
	now      func() time.Time
}

func New(db *gorm.DB, notifier utils.Notifier) *Service {
	if notifier == nil {
		notifier = utils.LogNotifier{}
	}
	return &Service{db: db, notifier: notifier, now: time.Now}
}

type CreateInput struct {
	Title         string
	Description   string
	ComplaintType string
	Priority      string
	RoomNumber    string // used only when the creator's profile has no room
}

// Stats are the admin dashboard counters.
type Stats struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByPriority      map[string]int64 `json:"by_priority"`
	Unassigned      int64            `json:"unassigned"`
	CreatedToday    int64            `json:"created_today"`
	CreatedThisWeek int64            `json:"created_this_week"`
}

// priorityOrder sorts high, medium, low, then anything else.
const priorityOrder = `CASE mr.priority
	WHEN 'high' THEN 1
	WHEN 'medium' THEN 2
	WHEN 'low' THEN 3
	ELSE 4
END`

// Create files a new pending ticket for actorID.
func (s *Service) Create(ctx context.Context, actorID uint, in CreateInput) (*models.MaintenanceRequest, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, utils.ErrMissingFields
	}

	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return nil, utils.ErrInvalidPriority
	}

	complaintType := strings.TrimSpace(in.ComplaintType)
	if complaintType == "" {
		complaintType = models.DefaultComplaintType
	}

	db := s.db.WithContext(ctx)

	var creator models.User
	if err := db.First(&creator, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUserNotFound
		}
		return nil, utils.Internal("find creator", err)
	}

	room := creator.RoomNumber
	if room == "" {
		room = strings.TrimSpace(in.RoomNumber)
	}

	ticket := models.MaintenanceRequest{
		UserID:        creator.ID,
		Title:         title,
		Description:   description,
		ComplaintType: complaintType,
		RoomNumber:    room,
		Status:        models.StatusPending,
		Priority:      priority,
	}
	if err := db.Create(&ticket).Error; err != nil {
		return nil, utils.Internal("create maintenance request", err)
	}
	return &ticket, nil
}

// ListForStudent returns the tickets actorID created, newest first.
func (s *Service) ListForStudent(ctx context.Context, actorID uint) ([]models.MaintenanceRequestView, error) {
	tickets := []models.MaintenanceRequestView{}
	err := s.db.WithContext(ctx).
		Table("maintenance_requests AS mr").
		Select("mr.*, a.username AS admin_name, t.username AS technician_name").
		Joins("LEFT JOIN users a ON a.id = mr.assigned_by_admin_id").
		Joins("LEFT JOIN users t ON t.id = mr.assigned_to").
		Where("mr.user_id = ?", actorID).
		Order("mr.created_at DESC").Order("mr.id DESC").
		Scan(&tickets).Error
	if err != nil {
		return nil, utils.Internal("list my requests", err)
	}
	return tickets, nil
}

// ListAll returns every ticket, newest first. A non-empty status restricts
// the listing to that status.
func (s *Service) ListAll(ctx context.Context, status string) ([]models.MaintenanceRequestView, error) {
	q := s.db.WithContext(ctx).
		Table("maintenance_requests AS mr").
		Select("mr.*, u.username AS student_name, u.room_number AS student_room, u.phone AS student_phone, t.username AS technician_name").
		Joins("LEFT JOIN users u ON u.id = mr.user_id").
		Joins("LEFT JOIN users t ON t.id = mr.assigned_to")
	if status != "" {
		q = q.Where("mr.status = ?", status)
	}

	tickets := []models.MaintenanceRequestView{}
	if err := q.Order("mr.created_at DESC").Order("mr.id DESC").Scan(&tickets).Error; err != nil {
		return nil, utils.Internal("list complaints", err)
	}
	return tickets, nil
}

// ListForTechnician returns the tickets assigned to actorID, highest priority
// first and newest first within a priority.
func (s *Service) ListForTechnician(ctx context.Context, actorID uint, status string) ([]models.MaintenanceRequestView, error) {
	q := s.db.WithContext(ctx).
		Table("maintenance_requests AS mr").
		Select("mr.*, u.username AS student_name, u.room_number AS student_room, u.phone AS student_phone").
		Joins("LEFT JOIN users u ON u.id = mr.user_id").
		Where("mr.assigned_to = ?", actorID)
	if status != "" {
		q = q.Where("mr.status = ?", status)
	}

	tickets := []models.MaintenanceRequestView{}
	err := q.Order(priorityOrder).Order("mr.created_at DESC").Order("mr.id DESC").Scan(&tickets).Error
	if err != nil {
		return nil, utils.Internal("list tasks", err)
	}
	return tickets, nil
}

// Assign hands ticketID to technicianID on behalf of adminID and moves it to
// in-progress. The target's role is not checked.
func (s *Service) Assign(ctx context.Context, adminID, ticketID, technicianID uint) (*models.MaintenanceRequestView, error) {
	if technicianID == 0 {
		return nil, utils.ErrMissingTechnician
	}

	db := s.db.WithContext(ctx)

	ticket, err := s.find(db, ticketID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminal(ticket.Status) {
		return nil, utils.ErrInvalidTransition
	}

	var technician models.User
	if err := db.First(&technician, technicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUnknownTechnician
		}
		return nil, utils.Internal("find technician", err)
	}

	at := s.now()
	res := db.Model(&models.MaintenanceRequest{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"assigned_to":          technicianID,
			"assigned_by_admin_id": adminID,
			"assigned_at":          at,
			"status":               models.StatusInProgress,
			"updated_at":           at,
		})
	if res.Error != nil {
		return nil, utils.Internal("assign technician", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrTicketNotFound
	}

	if technician.Email != "" {
		subject, html := utils.AssignmentEmail(technician.Username, ticket.Title, ticket.RoomNumber, ticket.Priority)
		s.notify(ctx, technician.Email, subject, html)
	}

	return s.view(db, ticket.ID)
}

// UpdateStatus moves a ticket assigned to technicianID to status. Tickets that
// do not exist and tickets assigned to someone else are both reported as
// utils.ErrTaskNotFound.
func (s *Service) UpdateStatus(ctx context.Context, technicianID, ticketID uint, status string) (*models.MaintenanceRequestView, error) {
	status = models.NormalizeStatus(status)
	if !models.IsValidStatus(status) {
		return nil, utils.ErrInvalidStatus
	}

	db := s.db.WithContext(ctx)

	var ticket models.MaintenanceRequest
	err := db.Where("id = ? AND assigned_to = ?", ticketID, technicianID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTaskNotFound
		}
		return nil, utils.Internal("find task", err)
	}

	if !models.CanTransition(ticket.Status, status) {
		return nil, utils.ErrInvalidTransition
	}

	at := s.now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": at,
	}
	if status == models.StatusResolved {
		updates["completed_at"] = at
	}
	if err := db.Model(&models.MaintenanceRequest{}).Where("id = ?", ticket.ID).Updates(updates).Error; err != nil {
		return nil, utils.Internal("update task status", err)
	}

	if status == models.StatusResolved {
		var creator models.User
		if err := db.First(&creator, ticket.UserID).Error; err == nil && creator.Email != "" {
			subject, html := utils.ResolvedEmail(creator.Username, ticket.Title)
			s.notify(ctx, creator.Email, subject, html)
		}
	}

	return s.view(db, ticket.ID)
}

// Delete removes a ticket. Only its creator may delete it.
func (s *Service) Delete(ctx context.Context, actorID, ticketID uint) error {
	db := s.db.WithContext(ctx)

	ticket, err := s.find(db, ticketID)
	if err != nil {
		return err
	}
	if ticket.UserID != actorID {
		return utils.ErrForbidden
	}

	if err := db.Delete(&models.MaintenanceRequest{}, ticket.ID).Error; err != nil {
		return utils.Internal("delete maintenance request", err)
	}
	return nil
}

// Stats counts tickets for the admin dashboard.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	current := now.With(s.now())

	stats := &Stats{
		ByStatus:   map[string]int64{models.StatusPending: 0, models.StatusInProgress: 0, models.StatusResolved: 0},
		ByPriority: map[string]int64{models.PriorityLow: 0, models.PriorityMedium: 0, models.PriorityHigh: 0},
	}

	type bucket struct {
		Name  string
		Total int64
	}
	var byStatus, byPriority []bucket

	steps := []func() error{
		func() error { return db.Model(&models.MaintenanceRequest{}).Count(&stats.Total).Error },
		func() error {
			return db.Model(&models.MaintenanceRequest{}).Select("status AS name, COUNT(*) AS total").Group("status").Scan(&byStatus).Error
		},
		func() error {
			return db.Model(&models.MaintenanceRequest{}).Select("priority AS name, COUNT(*) AS total").Group("priority").Scan(&byPriority).Error
		},
		func() error {
			return db.Model(&models.MaintenanceRequest{}).Where("assigned_to IS NULL").Count(&stats.Unassigned).Error
		},
		func() error {
			return db.Model(&models.MaintenanceRequest{}).Where("created_at >= ?", current.BeginningOfDay()).Count(&stats.CreatedToday).Error
		},
		func() error {
			return db.Model(&models.MaintenanceRequest{}).Where("created_at >= ?", current.BeginningOfWeek()).Count(&stats.CreatedThisWeek).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, utils.Internal("maintenance stats", err)
		}
	}

	for _, b := range byStatus {
		stats.ByStatus[b.Name] = b.Total
	}
	for _, b := range byPriority {
		stats.ByPriority[b.Name] = b.Total
	}
	return stats, nil
}

func (s *Service) find(db *gorm.DB, ticketID uint) (*models.MaintenanceRequest, error) {
	var ticket models.MaintenanceRequest
	if err := db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTicketNotFound
		}
		return nil, utils.Internal("find maintenance request", err)
	}
	return &ticket, nil
}

// view reloads a single ticket with every display column joined.
func (s *Service) view(db *gorm.DB, ticketID uint) (*models.MaintenanceRequestView, error) {
	var v models.MaintenanceRequestView
	res := db.Table("maintenance_requests AS mr").
		Select("mr.*, u.username AS student_name, u.room_number AS student_room, u.phone AS student_phone, t.username AS technician_name, a.username AS admin_name").
		Joins("LEFT JOIN users u ON u.id = mr.user_id").
		Joins("LEFT JOIN users t ON t.id = mr.assigned_to").
		Joins("LEFT JOIN users a ON a.id = mr.assigned_by_admin_id").
		Where("mr.id = ?", ticketID).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, utils.Internal("load maintenance request", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrTicketNotFound
	}
	return &v, nil
}

func (s *Service) notify(ctx context.Context, to, subject, html string) {
	if err := s.notifier.SendEmail(ctx, to, subject, html); err != nil {
		log.Printf("[NOTIFY] failed to email %s: %v", to, err)
	}
}

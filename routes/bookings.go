package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"bookmyrepair-server/database"
	"bookmyrepair-server/models"
	"bookmyrepair-server/services"
	"bookmyrepair-server/utils"
	ws "bookmyrepair-server/websocket"
)

// BookingHandler owns the booking endpoints. The notifier and tracking
// hub are injected once at startup.
type BookingHandler struct {
	notifier services.Notifier
	hub      *ws.Hub
}

// NewBookingHandler creates a booking handler with its collaborators.
func NewBookingHandler(notifier services.Notifier, hub *ws.Hub) *BookingHandler {
	return &BookingHandler{notifier: notifier, hub: hub}
}

// RegisterBookingRoutes registers all booking-related routes
func (h *BookingHandler) RegisterBookingRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.createBooking)
	rg.GET("", h.listBookings)
	rg.POST("/track", h.trackBooking)
	rg.GET("/track/ws", h.trackBookingSocket)
	rg.GET("/:id", h.getBooking)
	rg.PUT("/:id", h.updateBooking)
	rg.PUT("/:id/assign-technician", h.assignTechnician)
	rg.PUT("/:id/status", h.updateStatus)
	rg.PUT("/:id/live-location", h.updateLiveLocation)
	rg.DELETE("/:id", h.deleteBooking)
}

func parseBookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return 0, false
	}
	return uint(id), true
}

func loadBooking(c *gin.Context) (*models.Booking, bool) {
	id, ok := parseBookingID(c)
	if !ok {
		return nil, false
	}

	var booking models.Booking
	if err := database.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking"})
		}
		return nil, false
	}
	return &booking, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func previousStatusOf(b *models.Booking) string {
	if b.Status == "" {
		return models.StatusPending
	}
	return b.Status
}

// notifyStatusChangedAsync dispatches a status notification on a detached
// goroutine. Errors feed the log only; they never reach the caller.
func (h *BookingHandler) notifyStatusChangedAsync(b models.Booking, previousStatus string) {
	go func() {
		result := h.notifier.SendStatusChanged(&b, previousStatus)
		var errs []string
		errs = append(errs, result.Email.Errors...)
		errs = append(errs, result.WhatsApp.Errors...)
		if len(errs) > 0 {
			log.Printf("⚠️ Booking status notification warnings: %s", strings.Join(errs, " | "))
		}
	}()
}

// createBooking handles POST /bookings
func (h *BookingHandler) createBooking(c *gin.Context) {
	var patch services.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	patch.Normalize()

	derived := services.ResolveLocation(nil, &patch)

	booking := models.Booking{
		Brand:          deref(patch.Brand),
		Model:          deref(patch.Model),
		Service:        deref(patch.Service),
		IssueOne:       deref(patch.IssueOne),
		IssueTwo:       deref(patch.IssueTwo),
		Name:           deref(patch.Name),
		Phone:          deref(patch.Phone),
		Email:          deref(patch.Email),
		PickupOption:   derived.PickupOption,
		Address:        derived.Address,
		Location:       derived.Location,
		PickupAddress:  derived.PickupAddress,
		PickupPhone:    derived.PickupPhone,
		PickupMapURL:   derived.PickupMapURL,
		AdminNote:      deref(patch.AdminNote),
		MapURL:         deref(patch.MapURL),
		Status:         models.StatusPending,
		TechnicianName: patch.ResolvedTechnicianName(),
		Technician:     patch.ResolvedTechnicianName(),
	}
	if patch.TechnicianPhone != nil {
		booking.TechnicianPhone = *patch.TechnicianPhone
	}
	if patch.SelectedIssues != nil {
		booking.SelectedIssues = pq.StringArray(*patch.SelectedIssues)
	}
	if booking.Location == "" {
		booking.Location = booking.Address
	}

	if status := deref(patch.Status); status != "" {
		if !models.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + models.StatusListString()})
			return
		}
		booking.Status = status
	}

	if live, mapURL, ok := services.ResolveLiveLocation(&patch); ok {
		booking.LiveLocation = *live
		if booking.MapURL == "" {
			booking.MapURL = mapURL
		}
	}

	if booking.Brand == "" || booking.Model == "" || booking.Service == "" ||
		booking.Name == "" || booking.Phone == "" || booking.Email == "" || booking.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "brand, model, service, name, phone, email and address are required",
		})
		return
	}

	// The tracking id is unique by index; regenerate and retry on the
	// rare collision.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		booking.TrackingID = models.GenerateTrackingID()
		err = database.DB.Create(&booking).Error
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Could not allocate a unique tracking ID"})
			return
		}
		log.Printf("❌ Failed to create booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	notification := h.notifier.SendBookingCreated(&booking)

	c.JSON(http.StatusCreated, struct {
		models.Booking
		Notification services.NotificationResult `json:"notification"`
	}{booking, notification})
}

// listBookings handles GET /bookings, newest first
func (h *BookingHandler) listBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := database.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// getBooking handles GET /bookings/:id
func (h *BookingHandler) getBooking(c *gin.Context) {
	booking, ok := loadBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, booking)
}

func findBookingByTrackingPair(trackingIDRaw, phone string) (*models.Booking, error) {
	trackingID := strings.ToUpper(trackingIDRaw)

	query := database.DB.Where("phone = ?", phone)
	if id, err := strconv.ParseUint(trackingIDRaw, 10, 32); err == nil {
		query = query.Where("tracking_id = ? OR id = ?", trackingID, uint(id))
	} else {
		query = query.Where("tracking_id = ?", trackingID)
	}

	var booking models.Booking
	if err := query.First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// trackBooking handles POST /bookings/track. The phone acts as a shared
// secret paired with the tracking id; no token is required.
func (h *BookingHandler) trackBooking(c *gin.Context) {
	var req struct {
		TrackingID string `json:"trackingId"`
		Phone      string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	trackingID := utils.CleanString(req.TrackingID)
	phone := utils.CleanPhone(req.Phone)
	if trackingID == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trackingId and phone are required"})
		return
	}

	booking, err := findBookingByTrackingPair(trackingID, phone)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found for this tracking ID and phone"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// trackBookingSocket handles GET /bookings/track/ws and streams status
// and live-location events for one booking.
func (h *BookingHandler) trackBookingSocket(c *gin.Context) {
	trackingID := utils.CleanString(c.Query("trackingId"))
	phone := utils.CleanPhone(c.Query("phone"))
	if trackingID == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trackingId and phone are required"})
		return
	}

	booking, err := findBookingByTrackingPair(trackingID, phone)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found for this tracking ID and phone"})
		return
	}

	ws.ServeTracking(h.hub, c.Writer, c.Request, booking.ID)
}

// assignTechnician handles PUT /bookings/:id/assign-technician
func (h *BookingHandler) assignTechnician(c *gin.Context) {
	booking, ok := loadBooking(c)
	if !ok {
		return
	}

	var req struct {
		TechnicianID    *uint  `json:"technicianId"`
		Technician      string `json:"technician"`
		TechnicianName  string `json:"technicianName"`
		TechnicianPhone string `json:"technicianPhone"`
		Status          string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	previousStatus := previousStatusOf(booking)

	technicianName := utils.CleanString(req.TechnicianName)
	if technicianName == "" {
		technicianName = utils.CleanString(req.Technician)
	}
	technicianPhone := utils.CleanPhone(req.TechnicianPhone)
	var technicianID *uint

	if req.TechnicianID != nil && *req.TechnicianID != 0 {
		var technician models.Technician
		if err := database.DB.First(&technician, *req.TechnicianID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			return
		}
		technicianID = &technician.ID
		technicianName = technician.Name
		technicianPhone = technician.Phone
	}

	if technicianName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technicianId or technicianName is required"})
		return
	}

	nextStatus := utils.CleanString(req.Status)
	if nextStatus == "" {
		nextStatus = models.StatusAssigned
	}
	if !models.IsValidStatus(nextStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + models.StatusListString()})
		return
	}

	booking.TechnicianID = technicianID
	booking.TechnicianName = technicianName
	booking.TechnicianPhone = technicianPhone
	booking.Technician = technicianName
	booking.Status = nextStatus

	if err := database.DB.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign technician"})
		return
	}

	h.notifyStatusChangedAsync(*booking, previousStatus)
	h.hub.PublishStatus(booking, previousStatus)

	c.JSON(http.StatusOK, booking)
}

// updateStatus handles PUT /bookings/:id/status
func (h *BookingHandler) updateStatus(c *gin.Context) {
	booking, ok := loadBooking(c)
	if !ok {
		return
	}

	var req struct {
		Status    string  `json:"status"`
		AdminNote *string `json:"adminNote"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	status := utils.CleanString(req.Status)
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	if !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + models.StatusListString()})
		return
	}

	previousStatus := previousStatusOf(booking)
	previousAdminNote := utils.CleanString(booking.AdminNote)

	booking.Status = status
	if req.AdminNote != nil {
		booking.AdminNote = utils.CleanString(*req.AdminNote)
	}

	if err := database.DB.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	shouldNotify := !strings.EqualFold(previousStatus, status) ||
		(req.AdminNote != nil && utils.CleanString(*req.AdminNote) != previousAdminNote)

	if shouldNotify {
		h.notifyStatusChangedAsync(*booking, previousStatus)
		h.hub.PublishStatus(booking, previousStatus)
	}

	c.JSON(http.StatusOK, booking)
}

// updateLiveLocation handles PUT /bookings/:id/live-location
func (h *BookingHandler) updateLiveLocation(c *gin.Context) {
	booking, ok := loadBooking(c)
	if !ok {
		return
	}

	var patch services.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	patch.Normalize()

	live, mapURL, hasCoords := services.ResolveLiveLocation(&patch)
	if !hasCoords {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required numbers"})
		return
	}

	requestedStatus := deref(patch.Status)
	if requestedStatus != "" && !models.IsValidStatus(requestedStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + models.StatusListString()})
		return
	}

	previousStatus := previousStatusOf(booking)
	previousMapURL := booking.MapURL

	booking.LiveLocation = *live
	// Coordinates always win over a manually supplied map link.
	booking.MapURL = mapURL
	if requestedStatus != "" {
		booking.Status = requestedStatus
	}
	if patch.AdminNote != nil {
		booking.AdminNote = *patch.AdminNote
	}

	if err := database.DB.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update live location"})
		return
	}

	statusChanged := requestedStatus != "" && !strings.EqualFold(previousStatus, requestedStatus)
	mapBecameAvailable := previousMapURL == "" && booking.MapURL != ""

	if statusChanged || mapBecameAvailable {
		h.notifyStatusChangedAsync(*booking, previousStatus)
	}
	h.hub.PublishLiveLocation(booking)

	c.JSON(http.StatusOK, booking)
}

// updateBooking handles PUT /bookings/:id, the general partial update.
func (h *BookingHandler) updateBooking(c *gin.Context) {
	booking, ok := loadBooking(c)
	if !ok {
		return
	}

	var patch services.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	patch.Normalize()

	// An explicit empty status is ignored rather than stored; a non-empty
	// one must belong to the vocabulary.
	status := deref(patch.Status)
	if status != "" && !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + models.StatusListString()})
		return
	}

	previous := *booking

	derived := services.ResolveLocation(booking, &patch)

	updates := map[string]interface{}{}
	setIfPresent := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}

	setIfPresent("name", patch.Name)
	setIfPresent("phone", patch.Phone)
	setIfPresent("email", patch.Email)
	setIfPresent("service", patch.Service)
	setIfPresent("brand", patch.Brand)
	setIfPresent("model", patch.Model)
	setIfPresent("issue_one", patch.IssueOne)
	setIfPresent("issue_two", patch.IssueTwo)
	setIfPresent("admin_note", patch.AdminNote)
	setIfPresent("map_url", patch.MapURL)

	if status != "" {
		updates["status"] = status
	}
	if patch.SelectedIssues != nil {
		updates["selected_issues"] = pq.StringArray(*patch.SelectedIssues)
	}

	if derived.SetAddress {
		updates["address"] = derived.Address
	}
	if derived.SetLocation {
		updates["location"] = derived.Location
	}
	if derived.SetPickupOption {
		updates["pickup_option"] = derived.PickupOption
	}
	if derived.SetPickupAddress {
		updates["pickup_address"] = derived.PickupAddress
	}
	if derived.SetPickupPhone {
		updates["pickup_phone"] = derived.PickupPhone
	}
	if derived.SetPickupMapURL {
		updates["pickup_map_url"] = derived.PickupMapURL
	}

	if patch.TechnicianProvided() {
		name := patch.ResolvedTechnicianName()
		updates["technician_name"] = name
		updates["technician"] = name
	}
	if patch.TechnicianPhone != nil {
		updates["technician_phone"] = *patch.TechnicianPhone
	}
	if patch.TechnicianID != nil {
		if *patch.TechnicianID == 0 {
			updates["technician_id"] = nil
		} else {
			updates["technician_id"] = *patch.TechnicianID
		}
	}

	live, mapURL, hasCoords := services.ResolveLiveLocation(&patch)
	if hasCoords {
		updates["live_lat"] = *live.Lat
		updates["live_lng"] = *live.Lng
		updates["live_updated_at"] = time.Now()
		if deref(patch.MapURL) == "" {
			updates["map_url"] = mapURL
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(booking).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
			return
		}
	}

	var updated models.Booking
	if err := database.DB.First(&updated, booking.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload booking"})
		return
	}

	flags := services.ChangeFlags{
		StatusProvided:          status != "",
		AdminNoteProvided:       patch.AdminNote != nil,
		ServiceProvided:         patch.Service != nil,
		TechnicianProvided:      patch.TechnicianProvided(),
		TechnicianPhoneProvided: patch.TechnicianPhone != nil,
		CoordinatesProvided:     hasCoords,
		PickupAddressSet:        derived.SetPickupAddress,
		PickupPhoneSet:          derived.SetPickupPhone,
	}

	if services.ShouldNotifyCustomer(&previous, &updated, flags) {
		h.notifyStatusChangedAsync(updated, previousStatusOf(&previous))
		h.hub.PublishStatus(&updated, previousStatusOf(&previous))
	}
	if hasCoords {
		h.hub.PublishLiveLocation(&updated)
	}

	c.JSON(http.StatusOK, updated)
}

// deleteBooking handles DELETE /bookings/:id
func (h *BookingHandler) deleteBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

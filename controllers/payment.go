package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"khudalagse/models"
	"khudalagse/utils"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Checkout types
const (
	CheckoutTypeCart     = "cart_checkout"
	CheckoutTypeRecharge = "wallet_recharge"
)

const (
	checkoutCurrency = "bdt"

	// Flat delivery charge added to every cart checkout, in whole currency
	// units and in currency subunits.
	deliveryFee         = 30.0
	deliveryFeeSubunits = 3000

	lunchDeliveryHour  = 13
	dinnerDeliveryHour = 20
)

// anonymousUser marks checkout sessions created without an authenticated user
const anonymousUser = "guest"

// retrieveSession fetches a checkout session from Stripe. Overridable in tests.
var retrieveSession = func(id string) (*stripe.CheckoutSession, error) {
	return session.Get(id, nil)
}

// Collection touchpoints of the verifier, overridable in tests where no
// Mongo deployment is available.
var (
	insertProcessedSession = func(ctx context.Context, sessions *mongo.Collection, record models.ProcessedSession) error {
		_, err := sessions.InsertOne(ctx, record)
		return err
	}
	deleteProcessedSession = func(ctx context.Context, sessions *mongo.Collection, sessionID string) error {
		_, err := sessions.DeleteOne(ctx, bson.M{"_id": sessionID})
		return err
	}
	insertOrder = func(ctx context.Context, orders *mongo.Collection, order models.Order) error {
		_, err := orders.InsertOne(ctx, order)
		return err
	}
)

// CheckoutItem is one cart entry as sent by the client. The client re-sends
// the cart at verification time because the checkout session does not retain
// full line-item fidelity.
type CheckoutItem struct {
	ItemID       primitive.ObjectID `json:"itemId,omitempty"`
	RestaurantID primitive.ObjectID `json:"restaurantId,omitempty"`
	Name         string             `json:"name"`
	Price        float64            `json:"price"`
	Quantity     int                `json:"quantity"`
	Date         string             `json:"date,omitempty"` // YYYY-MM-DD
	Day          string             `json:"day,omitempty"`
	MealType     string             `json:"mealType,omitempty"`
	Hour         int                `json:"hour,omitempty"` // overrides the slot delivery hour
}

type checkoutRequest struct {
	Type            string          `json:"type"`
	Items           []CheckoutItem  `json:"items,omitempty"`
	DeliveryAddress *models.Address `json:"deliveryAddress,omitempty"`
	Amount          float64         `json:"amount,omitempty"`
}

type verifyRequest struct {
	SessionID string         `json:"sessionId"`
	CartItems []CheckoutItem `json:"cartItems,omitempty"`
}

// PaymentController builds checkout sessions and materializes paid carts
type PaymentController struct {
	Orders            *mongo.Collection
	Users             *mongo.Collection
	ProcessedSessions *mongo.Collection
	EmailService      *utils.EmailService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(client *mongo.Client, emailService *utils.EmailService) *PaymentController {
	db := client.Database(utils.DatabaseName)
	return &PaymentController{
		Orders:            db.Collection("orders"),
		Users:             db.Collection("users"),
		ProcessedSessions: db.Collection("processed_sessions"),
		EmailService:      emailService,
	}
}

func clientURL() string {
	url := os.Getenv("CLIENT_URL")
	if url == "" {
		url = "http://localhost:5173"
	}
	return url
}

// toSubunits converts a decimal price into integer currency subunits,
// rounding half away from zero. Going through decimal avoids float64
// artifacts like 100.005*100 = 10000.499...
func toSubunits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// cartLineItems builds one priced line item per cart entry plus the fixed
// delivery-fee line item.
func cartLineItems(items []CheckoutItem) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items)+1)

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		name := item.Name
		if name == "" {
			name = "Scheduled Meal"
		}
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(name),
		}
		if desc := strings.TrimSpace(item.Day + " " + item.MealType); desc != "" {
			productData.Description = stripe.String(desc)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(checkoutCurrency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(toSubunits(item.Price)),
			},
			Quantity: stripe.Int64(int64(qty)),
		})
	}

	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(checkoutCurrency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String("Delivery Fee"),
				Description: stripe.String("Flat delivery charge"),
			},
			UnitAmount: stripe.Int64(deliveryFeeSubunits),
		},
		Quantity: stripe.Int64(1),
	})
	return lineItems
}

// rechargeLineItem builds the single line item of a wallet recharge
func rechargeLineItem(amount float64) []*stripe.CheckoutSessionLineItemParams {
	return []*stripe.CheckoutSessionLineItemParams{{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(checkoutCurrency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String("Wallet Recharge"),
				Description: stripe.String("Adding funds to your KhudaLagse Wallet"),
			},
			UnitAmount: stripe.Int64(toSubunits(amount)),
		},
		Quantity: stripe.Int64(1),
	}}
}

// CreateCheckoutSession builds a hosted checkout session for either a cart
// checkout or a wallet recharge and returns its redirect URL.
func (pc *PaymentController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var lineItems []*stripe.CheckoutSessionLineItemParams
	switch req.Type {
	case "":
		utils.WriteError(w, http.StatusBadRequest, "Checkout type is required")
		return
	case CheckoutTypeCart:
		if len(req.Items) == 0 {
			utils.WriteError(w, http.StatusBadRequest, "Cart items are required")
			return
		}
		lineItems = cartLineItems(req.Items)
	case CheckoutTypeRecharge:
		if req.Amount <= 0 {
			utils.WriteError(w, http.StatusBadRequest, "A positive amount is required")
			return
		}
		lineItems = rechargeLineItem(req.Amount)
	default:
		utils.WriteError(w, http.StatusBadRequest, "Unknown checkout type")
		return
	}

	// Identify the acting user for the session metadata
	userRef := anonymousUser
	ctx, cancel := dbContext()
	defer cancel()
	if user, err := currentUser(ctx, pc.Users, r); err == nil {
		userRef = user.ID.Hex()
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(clientURL() + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(clientURL() + "/cancel"),
	}
	params.AddMetadata("userId", userRef)
	params.AddMetadata("type", req.Type)
	if req.Type == CheckoutTypeCart {
		address, err := json.Marshal(req.DeliveryAddress)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid delivery address")
			return
		}
		params.AddMetadata("deliveryAddress", string(address))
	}

	s, err := session.New(params)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]string{"id": s.ID, "url": s.URL})
}

// scheduleFor combines a cart item's date with its delivery hour: the
// explicit hour if given, otherwise 13:00 for lunch and 20:00 for dinner.
func scheduleFor(item CheckoutItem, now time.Time) time.Time {
	day := now.UTC()
	if item.Date != "" {
		if parsed, err := time.Parse("2006-01-02", item.Date); err == nil {
			day = parsed
		} else if parsed, err := time.Parse(time.RFC3339, item.Date); err == nil {
			day = parsed
		}
	}

	hour := item.Hour
	if hour == 0 {
		if item.MealType == models.SlotDinner {
			hour = dinnerDeliveryHour
		} else {
			hour = lunchDeliveryHour
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

// ordersFromCart creates one order per cart item. Total per order is the
// item subtotal plus the flat delivery fee.
func ordersFromCart(userID primitive.ObjectID, address models.Address, items []CheckoutItem, now time.Time) []models.Order {
	orders := make([]models.Order, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		slot := item.MealType
		if slot == "" {
			slot = models.SlotLunch
		}
		scheduled := scheduleFor(item, now)

		orders = append(orders, models.Order{
			UserID:       userID,
			RestaurantID: item.RestaurantID,
			Address:      address,
			Items: []models.OrderItem{{
				ItemID:   item.ItemID,
				Name:     item.Name,
				Quantity: qty,
				Price:    item.Price,
				MealType: slot,
			}},
			Total:         item.Price*float64(qty) + deliveryFee,
			Status:        models.OrderPending,
			PaymentStatus: models.PaymentPaid,
			PaymentMethod: "stripe",
			MealType:      slot,
			ScheduledDate: &scheduled,
			CreatedAt:     now,
		})
	}
	return orders
}

// VerifyPayment confirms a checkout session with the processor and, for cart
// checkouts, materializes one order per cart item. A processed-sessions
// record keyed by session id makes re-verification of the same session a
// no-op instead of duplicating orders.
func (pc *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Session id is required")
		return
	}

	s, err := retrieveSession(req.SessionID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		utils.WriteError(w, http.StatusBadRequest, "Payment not completed")
		return
	}

	switch s.Metadata["type"] {
	case CheckoutTypeRecharge:
		pc.confirmRecharge(w, s)
	case CheckoutTypeCart:
		pc.materializeOrders(w, s, req.CartItems)
	default:
		utils.WriteError(w, http.StatusBadRequest, "Unknown checkout type")
	}
}

// markProcessed records the session as handled. Returns false when another
// verification call already claimed it.
func (pc *PaymentController) markProcessed(sessionID, checkoutType string, orderCount int) (bool, error) {
	ctx, cancel := dbContext()
	defer cancel()

	err := insertProcessedSession(ctx, pc.ProcessedSessions, models.ProcessedSession{
		ID:            sessionID,
		Type:          checkoutType,
		OrdersCreated: orderCount,
		ProcessedAt:   time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	return err == nil, err
}

// releaseSession frees a claimed session so a later verification can retry it
func (pc *PaymentController) releaseSession(sessionID string) {
	ctx, cancel := dbContext()
	defer cancel()

	if err := deleteProcessedSession(ctx, pc.ProcessedSessions, sessionID); err != nil {
		log.Printf("Failed to release payment session %s: %v", sessionID, err)
	}
}

func (pc *PaymentController) confirmRecharge(w http.ResponseWriter, s *stripe.CheckoutSession) {
	fresh, err := pc.markProcessed(s.ID, CheckoutTypeRecharge, 0)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record payment session")
		return
	}

	// The credit itself lands through the wallet recharge endpoint; this
	// call only vouches that the session was paid.
	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"type":             CheckoutTypeRecharge,
		"paid":             true,
		"alreadyProcessed": !fresh,
	})
}

func (pc *PaymentController) materializeOrders(w http.ResponseWriter, s *stripe.CheckoutSession, items []CheckoutItem) {
	if len(items) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Cart items are required")
		return
	}

	fresh, err := pc.markProcessed(s.ID, CheckoutTypeCart, len(items))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record payment session")
		return
	}
	if !fresh {
		utils.WriteData(w, http.StatusOK, map[string]interface{}{
			"type":             CheckoutTypeCart,
			"ordersCreated":    0,
			"alreadyProcessed": true,
		})
		return
	}

	var address models.Address
	if raw := s.Metadata["deliveryAddress"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &address); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid delivery address in session metadata")
			return
		}
	}
	userID, _ := primitive.ObjectIDFromHex(s.Metadata["userId"]) // zero for guest sessions

	orders := ordersFromCart(userID, address, items, time.Now().UTC())

	// Fan out the inserts and await them jointly. A partial failure is
	// reported as one aggregate error; already-created orders stand.
	ctx, cancel := dbContext()
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	for _, order := range orders {
		order := order
		g.Go(func() error {
			return insertOrder(gctx, pc.Orders, order)
		})
	}
	if err := g.Wait(); err != nil {
		// Orders that did insert stand; freeing the claim lets the
		// client verify again instead of seeing a bricked session.
		pc.releaseSession(s.ID)
		utils.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create orders: %v", err))
		return
	}

	if !userID.IsZero() && pc.EmailService != nil {
		total := 0.0
		for _, order := range orders {
			total += order.Total
		}
		go pc.sendOrderConfirmation(userID, len(orders), total)
	}

	utils.WriteData(w, http.StatusCreated, map[string]interface{}{
		"type":          CheckoutTypeCart,
		"ordersCreated": len(orders),
	})
}

func (pc *PaymentController) sendOrderConfirmation(userID primitive.ObjectID, orderCount int, total float64) {
	ctx, cancel := dbContext()
	defer cancel()

	var user models.User
	if err := pc.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		log.Printf("Failed to load user %s for confirmation email: %v", userID.Hex(), err)
		return
	}
	if err := pc.EmailService.SendOrderConfirmationEmail(user.Email, orderCount, total); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", user.Email, err)
	}
}

// Command mockapi runs throwaway stand-ins for the auth and order services so
// the console can be developed without the real backends. Any email/password
// pair logs in; orders live in memory and reset on restart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type user struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type orderItem struct {
	ProductID       int64  `json:"productid"`
	ProductName     string `json:"productName"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"priceatpurchase"`
}

type order struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"userid"`
	Status           string      `json:"status"`
	TotalAmount      string      `json:"totalamount"`
	PaymentGatewayID string      `json:"paymentgatewayid"`
	CreatedAt        time.Time   `json:"createdat"`
	Items            []orderItem `json:"items,omitempty"`
	FirstName        string      `json:"firstname,omitempty"`
	LastName         string      `json:"lastname,omitempty"`
	Email            string      `json:"email,omitempty"`
}

type store struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*order
}

func seed() *store {
	s := &store{nextID: 3, orders: map[int64]*order{}}
	s.orders[1] = &order{
		ID: 1, UserID: 7, Status: "paid", TotalAmount: "249.98",
		PaymentGatewayID: "pi_3MockAbc", CreatedAt: time.Now().Add(-48 * time.Hour),
		FirstName: "Lucía", LastName: "Fernández", Email: "lucia@example.com",
		Items: []orderItem{
			{ProductID: 11, ProductName: "Teclado mecánico RGB", Quantity: 1, PriceAtPurchase: "149.99"},
			{ProductID: 12, ProductName: "Mouse inalámbrico", Quantity: 1, PriceAtPurchase: "99.99"},
		},
	}
	s.orders[2] = &order{
		ID: 2, UserID: 9, Status: "pending", TotalAmount: "59.97",
		CreatedAt: time.Now().Add(-3 * time.Hour),
		FirstName: "Marcos", LastName: "Giménez", Email: "marcos@example.com",
		Items: []orderItem{
			{ProductID: 20, ProductName: "Pad gamer XL", Quantity: 3, PriceAtPurchase: "19.99"},
		},
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func authMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" {
			writeErr(w, http.StatusBadRequest, "email y contraseña son obligatorios")
			return
		}
		role := "customer"
		if strings.HasPrefix(in.Email, "admin") {
			role = "admin"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user": user{
				ID: 1, FirstName: "Admin", LastName: "Genezis",
				Email: in.Email, Role: role,
			},
			"token": "mock-token-" + strconv.FormatInt(time.Now().Unix(), 10),
		})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "usuario creado"})
	})
	return mux
}

func requireBearer(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeErr(w, http.StatusUnauthorized, "token requerido")
		return false
	}
	return true
}

func orderMux(s *store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]order, 0, len(s.orders))
		for _, o := range s.orders {
			summary := *o
			summary.Items = nil
			out = append(out, summary)
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		s.mu.Lock()
		defer s.mu.Unlock()
		o, ok := s.orders[id]
		if !ok {
			writeErr(w, http.StatusNotFound, "orden no encontrada")
			return
		}
		writeJSON(w, http.StatusOK, o)
	})

	mux.HandleFunc("PATCH /api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var in struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Status == "" {
			writeErr(w, http.StatusBadRequest, "estado requerido")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		o, ok := s.orders[id]
		if !ok {
			writeErr(w, http.StatusNotFound, "orden no encontrada")
			return
		}
		o.Status = in.Status
		writeJSON(w, http.StatusOK, o)
	})

	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var in order
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextID++
		in.ID = s.nextID
		in.CreatedAt = time.Now()
		s.orders[in.ID] = &in
		writeJSON(w, http.StatusCreated, in)
	})

	return mux
}

func main() {
	authAddr := flag.String("auth-addr", "localhost:3001", "auth service listen address")
	orderAddr := flag.String("order-addr", "localhost:3000", "order service listen address")
	flag.Parse()

	s := seed()

	go func() {
		fmt.Printf("mock auth service on %s\n", *authAddr)
		log.Fatal(http.ListenAndServe(*authAddr, authMux()))
	}()

	fmt.Printf("mock order service on %s\n", *orderAddr)
	log.Fatal(http.ListenAndServe(*orderAddr, orderMux(s)))
}

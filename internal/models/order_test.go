package models

import (
	"strings"
	"testing"
)

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateOrderRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &CreateOrderRequest{
				TableCode: "A3",
				Items: []CreateOrderItem{
					{ProductID: 1, Qty: 2, Comment: "no onions"},
				},
			},
			wantErr: false,
		},
		{
			name: "missing table code",
			req: &CreateOrderRequest{
				TableCode: "",
				Items: []CreateOrderItem{
					{ProductID: 1, Qty: 1},
				},
			},
			wantErr: true,
		},
		{
			name: "table code too long",
			req: &CreateOrderRequest{
				TableCode: strings.Repeat("x", 31),
				Items: []CreateOrderItem{
					{ProductID: 1, Qty: 1},
				},
			},
			wantErr: true,
		},
		{
			name: "no items",
			req: &CreateOrderRequest{
				TableCode: "A3",
				Items:     []CreateOrderItem{},
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			req: &CreateOrderRequest{
				TableCode: "A3",
				Items: []CreateOrderItem{
					{ProductID: 1, Qty: 0},
				},
			},
			wantErr: true,
		},
		{
			name: "quantity above limit",
			req: &CreateOrderRequest{
				TableCode: "A3",
				Items: []CreateOrderItem{
					{ProductID: 1, Qty: 21},
				},
			},
			wantErr: true,
		},
		{
			name: "empty comment is valid",
			req: &CreateOrderRequest{
				TableCode: "B1",
				Items: []CreateOrderItem{
					{ProductID: 2, Qty: 1, Comment: ""},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusCooking, false},
		{StatusReady, false},
		{StatusDone, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "cooking", "ready", "done", "canceled"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "new", "served", "COOKING"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{15.004, 15.00},
		{15.005, 15.01},
		{2*10.0 + 1*5.0, 25.00},
		{9.999, 10.00},
	}

	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

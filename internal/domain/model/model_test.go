package model

import (
	"testing"
	"time"
)

func TestPayoutStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   PayoutStatus
		value string
	}{
		{"pending", PayoutStatusPending, "pending"},
		{"paid", PayoutStatusPaid, "paid"},
		{"rejected", PayoutStatusRejected, "rejected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestPayoutStatusTerminal(t *testing.T) {
	if PayoutStatusPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	if !PayoutStatusPaid.Terminal() || !PayoutStatusRejected.Terminal() {
		t.Fatal("paid and rejected must be terminal")
	}
}

func TestRoundCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{399.999, 400},
		{0.005, 0.01},
		{123.454, 123.45},
		{123.455, 123.46},
	}
	for _, tc := range cases {
		if got := RoundCurrency(tc.in); got != tc.want {
			t.Fatalf("RoundCurrency(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCommissionAmount(t *testing.T) {
	cases := []struct {
		order   float64
		percent float64
		want    float64
	}{
		{1000, 40, 400},
		{250, 40, 100},
		{99.99, 40, 40},
		{10, 33.3, 3.33},
	}
	for _, tc := range cases {
		if got := CommissionAmount(tc.order, tc.percent); got != tc.want {
			t.Fatalf("CommissionAmount(%v, %v) = %v, want %v", tc.order, tc.percent, got, tc.want)
		}
	}
}

func TestReversalShareFullRefund(t *testing.T) {
	e := Earning{Amount: 400, OrderAmount: 1000}
	reverse, consumed := e.ReversalShare(1000)
	if reverse != 400 {
		t.Fatalf("expected full commission reversed, got %v", reverse)
	}
	if consumed != 1000 {
		t.Fatalf("expected full order absorbed, got %v", consumed)
	}
}

func TestReversalSharePartialRefund(t *testing.T) {
	e := Earning{Amount: 400, OrderAmount: 1000}
	reverse, consumed := e.ReversalShare(500)
	if reverse != 200 {
		t.Fatalf("expected half commission reversed, got %v", reverse)
	}
	if consumed != 500 {
		t.Fatalf("expected 500 absorbed, got %v", consumed)
	}
}

func TestReversalShareRefundExceedsOrder(t *testing.T) {
	e := Earning{Amount: 40, OrderAmount: 100}
	reverse, consumed := e.ReversalShare(250)
	if reverse != 40 {
		t.Fatalf("ratio must cap at 1, got reverse %v", reverse)
	}
	if consumed != 100 {
		t.Fatalf("consumed must cap at order amount, got %v", consumed)
	}
}

func TestReversalShareDegenerate(t *testing.T) {
	e := Earning{Amount: 40, OrderAmount: 100}
	if reverse, consumed := e.ReversalShare(0); reverse != 0 || consumed != 0 {
		t.Fatalf("expected zero share for exhausted refund, got %v/%v", reverse, consumed)
	}
	if reverse, consumed := (Earning{}).ReversalShare(10); reverse != 0 || consumed != 0 {
		t.Fatalf("expected zero share for zero order amount, got %v/%v", reverse, consumed)
	}
}

func TestEarningMatured(t *testing.T) {
	now := time.Now()
	held := Earning{AvailableAt: now.Add(time.Hour)}
	if held.Matured(now) {
		t.Fatal("earning inside hold period must not be matured")
	}
	released := Earning{AvailableAt: now.Add(-time.Hour)}
	if !released.Matured(now) {
		t.Fatal("earning past hold period must be matured")
	}
	boundary := Earning{AvailableAt: now}
	if !boundary.Matured(now) {
		t.Fatal("earning maturing exactly now must count as available")
	}
}

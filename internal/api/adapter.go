package api

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// The utility aggregator and payment gateway have shipped the same payloads
// at two different nesting depths across versions. Everything here probes
// the known locations once so flow code only ever sees one canonical shape.

func extractElectricityToken(raw json.RawMessage) string {
	if v := gjson.GetBytes(raw, "data.token"); v.Exists() {
		return v.String()
	}
	if v := gjson.GetBytes(raw, "token"); v.Exists() {
		return v.String()
	}
	return ""
}

func extractPaymentAmountKobo(raw json.RawMessage) (float64, bool) {
	if v := gjson.GetBytes(raw, "data.amount"); v.Exists() {
		return v.Float(), true
	}
	if v := gjson.GetBytes(raw, "amount"); v.Exists() {
		return v.Float(), true
	}
	return 0, false
}

func extractMeterInfo(raw json.RawMessage) MeterInfo {
	node := gjson.ParseBytes(raw)
	if inner := node.Get("data"); inner.IsObject() {
		node = inner
	}
	return MeterInfo{
		CustomerName: node.Get("customer_name").String(),
		Address:      node.Get("address").String(),
		MeterNumber:  node.Get("meter_number").String(),
	}
}

func extractDataPlans(raw json.RawMessage) (map[string][]DataPlan, error) {
	node := gjson.ParseBytes(raw)
	if inner := node.Get("data"); inner.IsObject() {
		node = inner
	}
	if !node.IsObject() {
		return nil, fmt.Errorf("unexpected data plans payload")
	}

	plans := make(map[string][]DataPlan)
	var walkErr error
	node.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true // skip status/message noise at this level
		}
		var list []DataPlan
		if err := json.Unmarshal([]byte(value.Raw), &list); err != nil {
			walkErr = fmt.Errorf("decode %s plans: %w", key.String(), err)
			return false
		}
		plans[key.String()] = list
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return plans, nil
}

package catalog

import "testing"

func TestElectricityPlanIDs(t *testing.T) {
	seen := make(map[int]string)
	for _, p := range ElectricityProviders {
		prepaid := ElectricityPlanID(p.Name, Prepaid)
		postpaid := ElectricityPlanID(p.Name, Postpaid)
		if prepaid <= 0 || postpaid <= 0 {
			t.Fatalf("%s: plan IDs must be positive, got %d/%d", p.Name, prepaid, postpaid)
		}
		if prepaid == postpaid {
			t.Fatalf("%s: prepaid and postpaid must differ", p.Name)
		}
		for id, owner := range map[int]string{prepaid: p.Name + "/prepaid", postpaid: p.Name + "/postpaid"} {
			if prev, dup := seen[id]; dup {
				t.Fatalf("plan ID %d assigned to both %s and %s", id, prev, owner)
			}
			seen[id] = owner
		}
	}
}

func TestElectricityPlanIDFallback(t *testing.T) {
	if got := ElectricityPlanID("NOT-A-DISCO", Prepaid); got != DefaultElectricityPlanID {
		t.Fatalf("unknown provider prepaid = %d, want %d", got, DefaultElectricityPlanID)
	}
	if got := ElectricityPlanID("NOT-A-DISCO", Postpaid); got != DefaultElectricityPlanID {
		t.Fatalf("unknown provider postpaid = %d, want %d", got, DefaultElectricityPlanID)
	}
}

func TestElectricityPlanIDKnown(t *testing.T) {
	if got := ElectricityPlanID("AEDC", Prepaid); got != 15 {
		t.Fatalf("AEDC prepaid = %d, want 15", got)
	}
	if got := ElectricityPlanID("IKEDC", Postpaid); got != 2 {
		t.Fatalf("IKEDC postpaid = %d, want 2", got)
	}
}

func TestCablePlanByID(t *testing.T) {
	plan, ok := CablePlanByID(3)
	if !ok || plan.Name != "GOtv Max" {
		t.Fatalf("CablePlanByID(3) = %+v, %v", plan, ok)
	}
	if _, ok := CablePlanByID(99); ok {
		t.Fatalf("expected missing plan for ID 99")
	}
}

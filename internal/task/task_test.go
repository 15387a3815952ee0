package task

import "testing"

func TestNewStartsAtFullRemainingWork(t *testing.T) {
	tk := New("t1", "iot_0", 500, 20, false, 0)
	if tk.Remaining != tk.Size {
		t.Fatalf("remaining = %d, want %d", tk.Remaining, tk.Size)
	}
	if tk.State != Created {
		t.Fatalf("state = %v, want Created", tk.State)
	}
}

func TestAddResponseTimeIsAdditive(t *testing.T) {
	tk := New("t1", "iot_0", 500, 20, false, 0)
	tk.AddResponseTime(5)
	tk.AddResponseTime(3)
	if tk.ResponseMs != 8 {
		t.Fatalf("response_ms = %v, want 8", tk.ResponseMs)
	}
}

func TestLessUrgentBeforeNonUrgent(t *testing.T) {
	urgent := New("b", "iot_0", 100, 30, true, 0)
	nonUrgent := New("a", "iot_0", 100, 10, false, 0)
	if !Less(urgent, nonUrgent) {
		t.Fatal("urgent task should sort before non-urgent regardless of deadline or id")
	}
	if Less(nonUrgent, urgent) {
		t.Fatal("non-urgent should never sort before urgent")
	}
}

func TestLessEarlierDeadlineFirstWithinUrgencyClass(t *testing.T) {
	soon := New("z", "iot_0", 100, 5, false, 0)
	later := New("a", "iot_0", 100, 20, false, 0)
	if !Less(soon, later) {
		t.Fatal("earlier deadline should sort first within the same urgency class")
	}
}

func TestLessTiesBrokenByID(t *testing.T) {
	a := New("a", "iot_0", 100, 5, false, 0)
	b := New("b", "iot_0", 100, 5, false, 0)
	if !Less(a, b) {
		t.Fatal("lexicographically smaller id should sort first on a full tie")
	}
}

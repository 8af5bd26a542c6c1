package pluralforms

import (
	"reflect"
	"testing"
)

func assertEqual(t *testing.T, expected, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Logf("%#v != %#v", expected, got)
		t.Fail()
	}
}

func TestCompiler(t *testing.T) {
	for _, data := range []struct {
		pluralForm string
		fixture    map[uint32]int
	}{
		{
			// Japanese, no plural distinction
			"0",
			map[uint32]int{0: 0, 1: 0, 2: 0, 100: 0},
		},
		{
			// Germanic
			"n != 1",
			map[uint32]int{0: 1, 1: 0, 2: 1, 11: 1},
		},
		{
			// Same, parenthesised as msgfmt emits it
			"(n != 1)",
			map[uint32]int{0: 1, 1: 0, 2: 1},
		},
		{
			// French
			"n > 1",
			map[uint32]int{0: 0, 1: 0, 2: 1, 100: 1},
		},
		{
			// Russian three form rule
			"n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2",
			map[uint32]int{0: 2, 1: 0, 2: 1, 5: 2, 11: 2, 21: 0, 22: 1, 25: 2, 101: 0, 111: 2},
		},
		{
			// Polish
			"n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2",
			map[uint32]int{1: 0, 2: 1, 5: 2, 12: 2, 22: 1, 112: 2},
		},
		{
			// Czech
			"(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2",
			map[uint32]int{0: 2, 1: 0, 2: 1, 4: 1, 5: 2},
		},
		{
			// Division by zero evaluates to 0 rather than crashing
			"100 / n",
			map[uint32]int{0: 0, 1: 100, 10: 10},
		},
		{
			"n % (n - 1)",
			map[uint32]int{1: 0, 5: 1},
		},
		{
			"!n",
			map[uint32]int{0: 1, 1: 0, 7: 0},
		},
	} {
		data := data
		t.Run(data.pluralForm, func(t *testing.T) {
			expr, err := Compile(data.pluralForm)
			if err != nil {
				t.Fatal(err)
			} else if expr == nil {
				t.Fatalf("'%s' compiled to nil", data.pluralForm)
			}
			for n, e := range data.fixture {
				i := expr.Eval(n)
				if i != e {
					t.Logf("n = %d, expected %d, got %d", n, e, i)
					t.Fail()
				}
			}
		})
	}
}

func TestParser(t *testing.T) {
	expr, err := Compile("1+n/5*10")
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, expr, addExpr{
		left: numberExpr{1},
		right: mulExpr{
			left: divExpr{
				left:  varExpr{},
				right: numberExpr{5},
			},
			right: numberExpr{10},
		},
	})

	expr, err = Compile("1-(2+n)/3")
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, expr, subExpr{
		left: numberExpr{1},
		right: divExpr{
			left: addExpr{
				left:  numberExpr{2},
				right: varExpr{},
			},
			right: numberExpr{3},
		},
	})

	expr, err = Compile("(n==1)?0:n>=2&&n<=4?1:2")
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, expr, ternaryExpr{
		test: eqExpr{
			left:  varExpr{},
			right: numberExpr{1},
		},
		ifTrue: numberExpr{0},
		ifFalse: ternaryExpr{
			test: andExpr{
				left: gteExpr{
					left:  varExpr{},
					right: numberExpr{2},
				},
				right: lteExpr{
					left:  varExpr{},
					right: numberExpr{4},
				},
			},
			ifTrue:  numberExpr{1},
			ifFalse: numberExpr{2},
		},
	})
}

func TestExpressionTerminators(t *testing.T) {
	// ';' and newline end the expression, as in a Plural-Forms header.
	for _, data := range []string{"n != 1;", "n != 1\n", "n != 1; trailing junk"} {
		expr, err := Compile(data)
		if err != nil {
			t.Fatalf("%q failed to compile: %v", data, err)
		}
		assertEqual(t, expr, neExpr{left: varExpr{}, right: numberExpr{1}})
	}
}

func TestParserFailures(t *testing.T) {
	for _, expr := range []string{
		"",
		"1 + + 2",
		"n=1",
		"(n==1",
		"n==1)",
		"1 +",
		"m==1",
		"n=>1",
		"n>1 ? 0",
		"n ? 1",
		"1 2",
		"n & 1",
		"99999999999999999999",
	} {
		_, err := Compile(expr)
		if err == nil {
			t.Logf("Expression %q unexpectedly compiled", expr)
			t.Fail()
		}
	}
}

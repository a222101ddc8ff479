// Package vocab holds the built-in word list used for tree keys and leaf values.
package vocab

// words is the default vocabulary: Greek letters followed by fruit and vegetables.
var words = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa",
	"lambda", "mu", "nu", "xi", "omicron", "pi", "rho", "sigma", "tau", "upsilon",
	"phi", "chi", "psi", "omega", "apple", "banana", "carrot", "date", "fig", "grape",
	"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "papaya", "quince",
	"raspberry", "strawberry", "tangerine", "ugli", "vanilla", "watermelon", "xigua", "yam", "zucchini",
}

// Words returns a copy of the default vocabulary.
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// Size returns the number of words in the default vocabulary.
func Size() int {
	return len(words)
}

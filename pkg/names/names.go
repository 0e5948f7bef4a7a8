// Package names generates plausible Philippine personal names for customers.
package names

import (
	"math/rand/v2"

	"github.com/TFMV/salesgen/pkg/sampling"
)

// Namer produces customer names.
type Namer interface {
	// Next returns a first and last name.
	Next() (first, last string)
}

// GivenNames is a curated list of first names common in the Philippines,
// mixing Spanish, English and Tagalog origins.
var GivenNames = []string{
	"Adrian", "Alma", "Alvin", "Amelia", "Andrea", "Angelica", "Angelo", "Antonio",
	"Aurora", "Bea", "Benjamin", "Carlo", "Carmela", "Catherine", "Cecilia", "Christian",
	"Cristina", "Danilo", "Dennis", "Divina", "Dolores", "Eduardo", "Elena", "Emmanuel",
	"Ernesto", "Estrella", "Felipe", "Fernando", "Florencia", "Gabriel", "Gloria", "Gregorio",
	"Imelda", "Isabel", "Jasmine", "Jerome", "Jessa", "Joel", "Jose", "Josefina",
	"Juan", "Kristine", "Leonora", "Liza", "Lourdes", "Luz", "Manuel", "Marco",
	"Maria", "Maricel", "Mark", "Marlon", "Michelle", "Miguel", "Nestor", "Nicole",
	"Noel", "Paolo", "Patricia", "Pedro", "Ramon", "Regina", "Ricardo", "Rizalina",
	"Roberto", "Rodel", "Rosario", "Ruben", "Samantha", "Teresita", "Vicente", "Wilfredo",
}

// Surnames is a curated list of common Philippine surnames.
var Surnames = []string{
	"Abad", "Aguilar", "Alvarez", "Aquino", "Bautista", "Buenaventura", "Castillo", "Castro",
	"Cruz", "Dagdag", "Dela Cruz", "De Guzman", "De Leon", "Del Rosario", "Diaz", "Domingo",
	"Esguerra", "Fernandez", "Flores", "Garcia", "Gonzales", "Gutierrez", "Hernandez", "Ignacio",
	"Lacson", "Lim", "Lopez", "Macaraeg", "Magbanua", "Manalo", "Manalastas", "Marquez",
	"Mendoza", "Mercado", "Navarro", "Ocampo", "Pacheco", "Pangilinan", "Panganiban", "Perez",
	"Quiambao", "Ramos", "Reyes", "Rivera", "Robles", "Santiago", "Santos", "Salazar",
	"Soriano", "Tan", "Tolentino", "Torres", "Valdez", "Villanueva", "Yap", "Zamora",
}

// Corpus draws names uniformly from fixed given-name and surname lists.
type Corpus struct {
	rand     *rand.Rand
	given    []string
	surnames []string
}

// NewPhilippine returns a Namer over the built-in Philippine corpus.
func NewPhilippine(r *rand.Rand) *Corpus {
	return NewCorpus(r, GivenNames, Surnames)
}

// NewCorpus returns a Namer over custom lists. Both lists must be non-empty.
func NewCorpus(r *rand.Rand, given, surnames []string) *Corpus {
	return &Corpus{
		rand:     r,
		given:    given,
		surnames: surnames,
	}
}

// Next implements Namer.
func (c *Corpus) Next() (string, string) {
	first := sampling.Uniform(c.rand, c.given)
	last := sampling.Uniform(c.rand, c.surnames)
	return first, last
}

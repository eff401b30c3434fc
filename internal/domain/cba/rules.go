package cba

// Category groups collective bargaining agreement rules.
type Category string

const (
	CategorySalaryCap Category = "salary-cap"
	CategoryLuxuryTax Category = "luxury-tax"
	CategoryContracts Category = "contracts"
	CategoryTrades    Category = "trades"
)

// Rule is a static reference entry about the CBA.
type Rule struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	Examples    []string `json:"examples,omitempty"`
}

// Rules returns the hard-coded CBA reference content. Each call returns a fresh copy.
func Rules() []Rule {
	return []Rule{
		{
			ID:          "1",
			Title:       "Salary Cap",
			Category:    CategorySalaryCap,
			Description: "The salary cap is a limit on the total amount of money that NBA teams can spend on player salaries.",
			Details: []string{
				"For the 2023-24 season, the salary cap is set at $136 million",
				"Teams can exceed the cap using various exceptions",
				"The cap is calculated based on Basketball Related Income (BRI)",
			},
			Examples: []string{"Teams can use the Mid-Level Exception to sign players even when over the cap"},
		},
		{
			ID:          "2",
			Title:       "Luxury Tax",
			Category:    CategoryLuxuryTax,
			Description: "Teams that exceed the luxury tax threshold must pay a tax on the excess amount.",
			Details: []string{
				"The luxury tax threshold for 2023-24 is $165 million",
				"Tax payments increase incrementally for each dollar over the threshold",
				"Repeat offenders pay higher tax rates",
			},
		},
		{
			ID:          "3",
			Title:       "Max Contracts",
			Category:    CategoryContracts,
			Description: "Maximum salary rules limit how much a player can earn based on years of service.",
			Details: []string{
				"0-6 years: 25% of salary cap",
				"7-9 years: 30% of salary cap",
				"10+ years: 35% of salary cap",
			},
		},
		{
			ID:          "4",
			Title:       "Trade Rules",
			Category:    CategoryTrades,
			Description: "NBA trades must follow specific salary matching requirements.",
			Details: []string{
				"Teams over the cap must match salaries within specific thresholds",
				"Recently signed players may have trade restrictions",
				"Draft picks can be included in trades with limitations",
			},
		},
	}
}

package catalog

import "github.com/tavvy/tavvy-pros-api/internal/wizard"

// catalog is the static three-level tree: provider type -> category ->
// subcategory -> suggested services. Category sets are disjoint per
// provider type.
var catalog = map[wizard.ProviderType][]Category{
	wizard.ProviderTypePro: {
		{
			Name: "Plumbing",
			Subcategories: []Subcategory{
				{Name: "Drain Services", SuggestedServices: []string{"Drain Cleaning", "Hydro Jetting", "Camera Inspection"}},
				{Name: "Water Heater", SuggestedServices: []string{"Water Heater Installation", "Water Heater Repair", "Tankless Conversion"}},
				{Name: "Leak Repair", SuggestedServices: []string{"Leak Detection", "Pipe Repair", "Slab Leak Repair"}},
				{Name: "Fixture Installation", SuggestedServices: []string{"Faucet Installation", "Toilet Installation", "Garbage Disposal Installation"}},
				{Name: "Sewer Line", SuggestedServices: []string{"Sewer Line Repair", "Sewer Line Replacement", "Trenchless Repair"}},
			},
		},
		{
			Name: "Electrical",
			Subcategories: []Subcategory{
				{Name: "Wiring & Rewiring", SuggestedServices: []string{"Whole Home Rewiring", "Outlet Installation", "Circuit Repair"}},
				{Name: "Panel Upgrades", SuggestedServices: []string{"Panel Replacement", "Breaker Installation", "Service Upgrade"}},
				{Name: "Lighting", SuggestedServices: []string{"Recessed Lighting", "Ceiling Fan Installation", "Landscape Lighting"}},
				{Name: "EV Chargers", SuggestedServices: []string{"EV Charger Installation", "Charger Circuit Wiring"}},
			},
		},
		{
			Name: "HVAC",
			Subcategories: []Subcategory{
				{Name: "AC Repair", SuggestedServices: []string{"AC Diagnosis", "Refrigerant Recharge", "Compressor Replacement"}},
				{Name: "Heating", SuggestedServices: []string{"Furnace Repair", "Furnace Installation", "Heat Pump Service"}},
				{Name: "Ductwork", SuggestedServices: []string{"Duct Cleaning", "Duct Sealing", "Duct Replacement"}},
				{Name: "Maintenance Plans", SuggestedServices: []string{"Seasonal Tune-Up", "Filter Replacement"}},
			},
		},
		{
			Name: "Cleaning",
			Subcategories: []Subcategory{
				{Name: "House Cleaning", SuggestedServices: []string{"Standard Cleaning", "Deep Cleaning", "Recurring Cleaning"}},
				{Name: "Move In/Out", SuggestedServices: []string{"Move-Out Cleaning", "Move-In Cleaning"}},
				{Name: "Carpet Cleaning", SuggestedServices: []string{"Steam Cleaning", "Stain Removal", "Pet Odor Treatment"}},
				{Name: "Window Cleaning", SuggestedServices: []string{"Interior Windows", "Exterior Windows", "Screen Cleaning"}},
			},
		},
		{
			Name: "Landscaping",
			Subcategories: []Subcategory{
				{Name: "Lawn Care", SuggestedServices: []string{"Mowing", "Fertilization", "Aeration"}},
				{Name: "Tree Services", SuggestedServices: []string{"Tree Trimming", "Tree Removal", "Stump Grinding"}},
				{Name: "Irrigation", SuggestedServices: []string{"Sprinkler Installation", "Sprinkler Repair", "Drip Systems"}},
				{Name: "Hardscaping", SuggestedServices: []string{"Patio Installation", "Retaining Walls", "Walkways"}},
			},
		},
		{
			Name: "Painting",
			Subcategories: []Subcategory{
				{Name: "Interior Painting", SuggestedServices: []string{"Room Painting", "Cabinet Painting", "Trim & Doors"}},
				{Name: "Exterior Painting", SuggestedServices: []string{"House Painting", "Deck Staining", "Fence Painting"}},
				{Name: "Drywall", SuggestedServices: []string{"Drywall Repair", "Texture Matching"}},
			},
		},
		{
			Name: "Roofing",
			Subcategories: []Subcategory{
				{Name: "Roof Repair", SuggestedServices: []string{"Leak Repair", "Shingle Replacement", "Flashing Repair"}},
				{Name: "Roof Replacement", SuggestedServices: []string{"Asphalt Shingles", "Metal Roofing", "Tile Roofing"}},
				{Name: "Gutters", SuggestedServices: []string{"Gutter Installation", "Gutter Cleaning", "Gutter Guards"}},
			},
		},
		{
			Name: "Handyman",
			Subcategories: []Subcategory{
				{Name: "General Repairs", SuggestedServices: []string{"Door Repair", "Drywall Patching", "Caulking"}},
				{Name: "Assembly", SuggestedServices: []string{"Furniture Assembly", "TV Mounting", "Shelving Installation"}},
				{Name: "Odd Jobs", SuggestedServices: []string{"Picture Hanging", "Weatherproofing", "Minor Carpentry"}},
			},
		},
		{
			Name: "Pest Control",
			Subcategories: []Subcategory{
				{Name: "General Pest", SuggestedServices: []string{"Quarterly Treatment", "Ant Control", "Spider Control"}},
				{Name: "Termites", SuggestedServices: []string{"Termite Inspection", "Termite Treatment"}},
				{Name: "Rodents", SuggestedServices: []string{"Rodent Exclusion", "Trapping & Removal"}},
			},
		},
	},
	wizard.ProviderTypeRealtor: {
		{
			Name: "Residential Sales",
			Subcategories: []Subcategory{
				{Name: "Buyer Representation", SuggestedServices: []string{"Home Search", "Offer Negotiation", "Closing Coordination"}},
				{Name: "Seller Representation", SuggestedServices: []string{"Listing Services", "Pricing Analysis", "Staging Consultation"}},
				{Name: "First-Time Buyers", SuggestedServices: []string{"Buyer Education", "Lender Referrals"}},
			},
		},
		{
			Name: "Commercial Real Estate",
			Subcategories: []Subcategory{
				{Name: "Office & Retail", SuggestedServices: []string{"Tenant Representation", "Lease Negotiation"}},
				{Name: "Investment Properties", SuggestedServices: []string{"Cap Rate Analysis", "Portfolio Acquisition"}},
			},
		},
		{
			Name: "Property Management",
			Subcategories: []Subcategory{
				{Name: "Residential Management", SuggestedServices: []string{"Tenant Screening", "Rent Collection", "Maintenance Coordination"}},
				{Name: "HOA Management", SuggestedServices: []string{"Board Support", "Assessment Collection"}},
			},
		},
		{
			Name: "Rentals & Leasing",
			Subcategories: []Subcategory{
				{Name: "Long-Term Rentals", SuggestedServices: []string{"Rental Search", "Lease Review"}},
				{Name: "Short-Term Rentals", SuggestedServices: []string{"Vacation Rental Setup", "Listing Optimization"}},
			},
		},
		{
			Name: "Land & New Construction",
			Subcategories: []Subcategory{
				{Name: "Land & Lots", SuggestedServices: []string{"Land Search", "Zoning Research"}},
				{Name: "New Builds", SuggestedServices: []string{"Builder Representation", "Walkthrough Inspections"}},
			},
		},
	},
	wizard.ProviderTypeOnTheGo: {
		{
			Name: "Food Truck",
			Subcategories: []Subcategory{
				{Name: "Street Food", SuggestedServices: []string{"Lunch Service", "Late Night Service"}},
				{Name: "Catering", SuggestedServices: []string{"Event Catering", "Corporate Catering", "Wedding Catering"}},
			},
		},
		{
			Name: "Mobile Detailing",
			Subcategories: []Subcategory{
				{Name: "Auto Detailing", SuggestedServices: []string{"Full Detail", "Interior Detail", "Ceramic Coating"}},
				{Name: "Fleet Services", SuggestedServices: []string{"Fleet Washing", "Commercial Contracts"}},
			},
		},
		{
			Name: "Mobile Pet Grooming",
			Subcategories: []Subcategory{
				{Name: "Dog Grooming", SuggestedServices: []string{"Full Groom", "Bath & Brush", "Nail Trim"}},
				{Name: "Cat Grooming", SuggestedServices: []string{"Lion Cut", "De-Shedding"}},
			},
		},
		{
			Name: "Mobile Car Wash",
			Subcategories: []Subcategory{
				{Name: "Exterior Wash", SuggestedServices: []string{"Hand Wash", "Wax & Polish"}},
				{Name: "Waterless Wash", SuggestedServices: []string{"Eco Wash", "Spot-Free Rinse"}},
			},
		},
		{
			Name: "Mobile Notary",
			Subcategories: []Subcategory{
				{Name: "Loan Signings", SuggestedServices: []string{"Refinance Signing", "Purchase Signing"}},
				{Name: "General Notary", SuggestedServices: []string{"Document Notarization", "Apostille Assistance"}},
			},
		},
		{
			Name: "Personal Training",
			Subcategories: []Subcategory{
				{Name: "In-Home Training", SuggestedServices: []string{"One-on-One Sessions", "Couples Training"}},
				{Name: "Outdoor Training", SuggestedServices: []string{"Boot Camp", "Running Coaching"}},
			},
		},
	},
}

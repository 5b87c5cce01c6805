/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package product

import (
	"fmt"
	"sync"

	"github.com/casurance/intake/internal/wizard"
)

// InsuranceTypes are the lines of business offered on the quick quote form.
var InsuranceTypes = []string{
	"general-liability", "commercial-property", "commercial-auto", "workers-comp",
	string(LiquorStore), string(BuildersRisk), string(Hotel), string(Habitational),
	string(CommercialPackage), string(ProductLiability), string(AutoDealerGarage), "other",
}

type catalog struct {
	byType           map[Type]*Product
	bySubmissionType map[string]*Product
}

var (
	catalogOnce sync.Once
	catalogInst *catalog
)

func registry() *catalog {
	catalogOnce.Do(func() {
		c, err := buildCatalog(declarations())
		if err != nil {
			panic("product catalog: " + err.Error())
		}
		catalogInst = c
	})
	return catalogInst
}

func buildCatalog(products []*Product) (*catalog, error) {
	c := &catalog{byType: map[Type]*Product{}, bySubmissionType: map[string]*Product{}}
	for _, p := range products {
		if _, dup := c.byType[p.Type]; dup {
			return nil, fmt.Errorf("duplicate product %q", p.Type)
		}
		if err := p.definition.Check(); err != nil {
			return nil, err
		}
		if err := p.compileSchema(); err != nil {
			return nil, err
		}
		c.byType[p.Type] = p
		c.bySubmissionType[p.SubmissionType] = p
	}
	return c, nil
}

func quoteProduct(t Type, submissionType, formName, table string, steps ...wizard.StepDefinition) *Product {
	return &Product{
		Type:             t,
		Path:             "/api/" + string(t) + "-quotes",
		SubmissionType:   submissionType,
		FormName:         formName,
		Table:            table,
		ContactNameField: "contactName",
		EmailField:       "email",
		PhoneField:       "phone",
		CityField:        "city",
		StateField:       "state",
		definition:       &wizard.Definition{Product: string(t), Steps: steps},
	}
}

func declarations() []*Product {
	liquorStore := quoteProduct(LiquorStore, "liquor_store", "Liquor Store Insurance", "LIQUOR_STORE_QUOTE",
		step(1, "Business information", businessFields()...),
		step(2, "Store operations",
			field("annualSales", "Annual sales", wizard.KindNumber, required, validate(wizard.AtLeast(0))),
			field("liquorSalesPercent", "Liquor sales percentage", wizard.KindNumber, required,
				validate(wizard.NumericRange(0, 100))),
			field("closingTime", "Closing time", wizard.KindSelect,
				options("before-10pm", "10pm-midnight", "after-midnight")),
			yesNoField("hasTastings", "Do you host tastings", required),
			field("tastingsPerMonth", "Tastings per month", wizard.KindNumber, required,
				validate(wizard.NumericRange(1, 60)), whenYes("hasTastings")),
			yesNoField("ownsBuilding", "Do you own the building", required),
			field("buildingValue", "Building value", wizard.KindNumber, required,
				validate(wizard.AtLeast(1)), whenYes("ownsBuilding")),
		),
		step(3, "Loss history", priorLossFields()...),
		step(4, "Contact information", contactFields()...),
	)

	buildersRisk := quoteProduct(BuildersRisk, "builders_risk", "Builders Risk Insurance", "BUILDERS_RISK_QUOTE",
		step(1, "Project location", withFields(businessFields()[:5],
			field("projectType", "Project type", wizard.KindSelect, required,
				options("new-construction", "renovation", "addition")),
			field("role", "Your role", wizard.KindSelect, required,
				options("owner", "general-contractor", "developer")))...),
		step(2, "Project values",
			field("constructionType", "Construction type", wizard.KindSelect, required,
				options("frame", "joisted-masonry", "masonry-non-combustible", "fire-resistive")),
			field("completedValue", "Completed value", wizard.KindNumber, required, validate(wizard.AtLeast(1))),
			field("existingStructureValue", "Existing structure value", wizard.KindNumber, required,
				validate(wizard.AtLeast(0)), when(`record.projectType in ["renovation", "addition"]`)),
			field("projectStartDate", "Project start date", wizard.KindDate, required),
			field("projectDurationMonths", "Duration in months", wizard.KindNumber, required,
				validate(wizard.NumericRange(1, 60))),
			field("blueprints", "Plans or blueprints", wizard.KindFile),
		),
		step(3, "Contact information", contactFields()...),
	)

	hotel := quoteProduct(Hotel, "hotel", "Hotel Insurance", "HOTEL_QUOTE",
		step(1, "Property location", businessFields()...),
		step(2, "Property details",
			field("numberOfRooms", "Number of rooms", wizard.KindNumber, required, validate(wizard.NumericRange(1, 5000))),
			field("stories", "Stories", wizard.KindNumber, required, validate(wizard.NumericRange(1, 200))),
			field("yearBuilt", "Year built", wizard.KindNumber, required, validate(wizard.NumericRange(1800, 2100))),
			yesNoField("sprinklered", "Fully sprinklered", required),
			yesNoField("hasPool", "Pool on premises", required),
			yesNoField("poolFenced", "Is the pool fenced", required, whenYes("hasPool")),
			yesNoField("servesAlcohol", "Serves alcohol", required),
			field("liquorSales", "Annual liquor sales", wizard.KindNumber, required,
				validate(wizard.AtLeast(0)), whenYes("servesAlcohol")),
		),
		step(3, "Loss history", priorLossFields()...),
		step(4, "Contact information", contactFields()...),
	)

	habitational := quoteProduct(Habitational, "habitational", "Habitational Insurance", "HABITATIONAL_QUOTE",
		step(1, "Property location", businessFields()...),
		step(2, "Property details",
			field("propertyType", "Property type", wizard.KindSelect, required,
				options("apartment", "condominium", "townhome", "student-housing", "senior-living")),
			field("units", "Number of units", wizard.KindNumber, required, validate(wizard.NumericRange(1, 10000))),
			field("occupancyRate", "Occupancy rate", wizard.KindNumber, validate(wizard.NumericRange(0, 100))),
			field("yearBuilt", "Year built", wizard.KindNumber, required, validate(wizard.NumericRange(1800, 2100))),
			field("totalInsuredValue", "Total insured value", wizard.KindNumber, required, validate(wizard.AtLeast(1))),
			yesNoField("hasHOA", "Managed by an HOA", when(`record.propertyType in ["condominium", "townhome"]`)),
		),
		step(3, "Loss history", priorLossFields()...),
		step(4, "Contact information", contactFields()...),
	)

	commercialPackage := quoteProduct(CommercialPackage, "commercial_package", "Commercial Package Policy", "COMMERCIAL_PACKAGE_QUOTE",
		step(1, "Business information", withFields(businessFields(),
			field("industry", "Industry", wizard.KindSelect, required,
				options("retail", "office", "restaurant", "manufacturing", "contractor", "wholesale", "other")),
			field("industryOther", "Describe your industry", wizard.KindText, required,
				when(`record.industry == "other"`)))...),
		step(2, "Coverage needs",
			field("annualRevenue", "Annual revenue", wizard.KindNumber, required, validate(wizard.AtLeast(0))),
			field("employees", "Number of employees", wizard.KindNumber, required, validate(wizard.NumericRange(0, 100000))),
			yesNoField("ownsBuilding", "Do you own the building", required),
			field("buildingValue", "Building value", wizard.KindNumber, required,
				validate(wizard.AtLeast(1)), whenYes("ownsBuilding")),
			field("businessPersonalProperty", "Business personal property", wizard.KindNumber, validate(wizard.AtLeast(0))),
			yesNoField("needsCommercialAuto", "Need commercial auto", required),
			field("vehicleCount", "Number of vehicles", wizard.KindNumber, required,
				validate(wizard.NumericRange(1, 1000)), whenYes("needsCommercialAuto")),
		),
		step(3, "Contact information", contactFields()...),
	)

	productLiability := quoteProduct(ProductLiability, "product_liability", "Product Liability Insurance", "PRODUCT_LIABILITY_QUOTE",
		step(1, "Business information", businessFields()...),
		step(2, "Products",
			field("productDescription", "Product description", wizard.KindTextArea, required, validate(wizard.MinLength(10))),
			field("productCategory", "Product category", wizard.KindSelect, required,
				options("consumer", "industrial", "food", "medical", "cosmetic", "other")),
			field("annualSales", "Annual sales", wizard.KindNumber, required, validate(wizard.AtLeast(0))),
			field("distribution", "Distribution", wizard.KindSelect, required, options("domestic", "international", "both")),
			field("exportCountries", "Export countries", wizard.KindText, required,
				when(`record.distribution in ["international", "both"]`)),
			yesNoField("hasRecalls", "Any product recalls", required),
			field("recallDetails", "Recall details", wizard.KindTextArea, required,
				whenYes("hasRecalls")),
		),
		step(3, "Contact information", contactFields()...),
	)

	autoDealer := quoteProduct(AutoDealerGarage, "auto_dealer_garage", "Auto Dealer & Garage Insurance", "AUTO_DEALER_GARAGE_QUOTE",
		step(1, "Business information", businessFields()...),
		step(2, "Operations",
			field("operationType", "Operation type", wizard.KindSelect, required, options("dealer", "service", "both")),
			field("employees", "Number of employees", wizard.KindNumber, required, validate(wizard.NumericRange(1, 10000))),
			yesNoField("offersTowing", "Towing services"),
		),
		conditionalStep(3, "Dealer operations", `record.operationType in ["dealer", "both"]`,
			field("dealerLicenseNumber", "Dealer license number", wizard.KindText, required),
			field("inventoryValue", "Average inventory value", wizard.KindNumber, required, validate(wizard.AtLeast(0))),
			field("dealerPlates", "Dealer plates", wizard.KindNumber, validate(wizard.NumericRange(0, 500))),
		),
		conditionalStep(4, "Service operations", `record.operationType in ["service", "both"]`,
			field("serviceBays", "Service bays", wizard.KindNumber, required, validate(wizard.NumericRange(1, 500))),
			field("customerVehicleValue", "Customer vehicles on premises value", wizard.KindNumber, required,
				validate(wizard.AtLeast(0))),
		),
		step(5, "Loss history", priorLossFields()...),
		step(6, "Contact information", contactFields()...),
	)

	quickQuote := quoteProduct(QuickQuote, SubmissionTypeQuote, "Quick Quote", "QUICK_QUOTE",
		step(1, "Coverage",
			field("insuranceType", "Insurance type", wizard.KindSelect, required, options(InsuranceTypes...)),
			field("insuranceTypeOther", "Describe the coverage you need", wizard.KindText, required,
				when(`record.insuranceType == "other"`)),
			field("businessName", "Business name", wizard.KindText, required),
			field("zip", "ZIP code", wizard.KindText, required,
				validate(wizard.Pattern(`^\d{5}(-\d{4})?$`, "Please enter a valid ZIP code"))),
		),
		step(2, "Contact information", contactFields()...),
	)
	quickQuote.Path = "/api/quick-quotes"
	quickQuote.InsuranceTypeField = "insuranceType"
	quickQuote.CityField = ""
	quickQuote.StateField = ""

	contact := &Product{
		Type:             Contact,
		Path:             "/api/contact",
		SubmissionType:   SubmissionTypeContact,
		FormName:         "Contact Form",
		Table:            "CONTACT_SUBMISSION",
		ContactNameField: "name",
		EmailField:       "email",
		PhoneField:       "phone",
		definition: &wizard.Definition{Product: string(Contact), Steps: []wizard.StepDefinition{
			step(1, "Contact us",
				field("name", "Name", wizard.KindText, required, validate(wizard.MinLength(2))),
				field("email", "Email", wizard.KindEmail, required),
				field("phone", "Phone", wizard.KindPhone),
				field("company", "Company", wizard.KindText),
				field("subject", "Subject", wizard.KindText),
				field("message", "Message", wizard.KindTextArea, required, validate(wizard.MinLength(10))),
			),
		}},
	}

	return []*Product{liquorStore, buildersRisk, hotel, habitational, commercialPackage,
		productLiability, autoDealer, quickQuote, contact}
}

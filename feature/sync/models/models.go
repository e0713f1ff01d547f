package models

// City mirrors the "Cities" table. Keyed by the CRM lookup id of the city
// field on commercial projects.
type City struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	IsPublic bool   `gorm:"column:is_public"`
}

func (City) TableName() string { return "Cities" }

// ProjectStatus mirrors the "Project_Status" table. The CRM only exposes the
// status name, so ids are minted locally from the sequence table.
type ProjectStatus struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (ProjectStatus) TableName() string { return "Project_Status" }

// Attribute mirrors the "Project_Attributes" table.
type Attribute struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
	Icon string `gorm:"column:icon"`
}

func (Attribute) TableName() string { return "Project_Attributes" }

// MegaProject mirrors the "Mega_Projects" table.
//
// seo_title, seo_meta_description, gallery and is_public are curated by
// content editors after the first sync, so updates preserve non-empty values
// instead of overwriting them. The columns are pointers so that the initial
// insert can write NULL and the preservation CASE can tell "never set" apart
// from "set to false".
type MegaProject struct {
	ID                 string  `gorm:"column:id;primaryKey"`
	Slug               string  `gorm:"column:slug"`
	Name               string  `gorm:"column:name"`
	Address            string  `gorm:"column:address"`
	Slogan             string  `gorm:"column:slogan"`
	Description        string  `gorm:"column:description"`
	SeoTitle           *string `gorm:"column:seo_title"`
	SeoMetaDescription *string `gorm:"column:seo_meta_description"`
	Attributes         string  `gorm:"column:attributes;type:jsonb"`
	Gallery            string  `gorm:"column:gallery;type:jsonb"`
	Latitude           string  `gorm:"column:latitude"`
	Longitude          string  `gorm:"column:longitude"`
	IsPublic           *bool   `gorm:"column:is_public"`
}

func (MegaProject) TableName() string { return "Mega_Projects" }

// Project mirrors the "Projects" table. hc is the CRM record id and the
// primary key ("historia comercial" in the upstream data model).
type Project struct {
	HC                         string  `gorm:"column:hc;primaryKey"`
	Name                       string  `gorm:"column:name"`
	Slug                       string  `gorm:"column:slug"`
	Slogan                     string  `gorm:"column:slogan"`
	Address                    string  `gorm:"column:address"`
	City                       string  `gorm:"column:city"`
	SmallDescription           string  `gorm:"column:small_description"`
	LongDescription            string  `gorm:"column:long_description"`
	SeoTitle                   *string `gorm:"column:seo_title"`
	SeoMetaDescription         *string `gorm:"column:seo_meta_description"`
	SIC                        string  `gorm:"column:sic"`
	SalesRoomAddress           string  `gorm:"column:sales_room_address"`
	SalesRoomScheduleAttention string  `gorm:"column:sales_room_schedule_attention"`
	SalesRoomLatitude          string  `gorm:"column:sales_room_latitude"`
	SalesRoomLongitude         string  `gorm:"column:sales_room_longitude"`
	SalaryMinimumCount         int     `gorm:"column:salary_minimum_count"`
	DeliveryTime               int     `gorm:"column:delivery_time"`
	Deposit                    int     `gorm:"column:deposit"`
	DiscountDescription        *string `gorm:"column:discount_description"`
	BonusRef                   *string `gorm:"column:bonus_ref"`
	PriceFromGeneral           int     `gorm:"column:price_from_general"`
	PriceUpGeneral             int     `gorm:"column:price_up_general"`
	Attributes                 string  `gorm:"column:attributes;type:jsonb"`
	Gallery                    string  `gorm:"column:gallery;type:jsonb"`
	UrbanPlans                 string  `gorm:"column:urban_plans;type:jsonb"`
	WorkProgressImages         string  `gorm:"column:work_progress_images;type:jsonb"`
	Tour360                    *string `gorm:"column:tour_360"`
	Type                       string  `gorm:"column:type"`
	Status                     string  `gorm:"column:status;type:jsonb"`
	Highlighted                bool    `gorm:"column:highlighted"`
	BuiltArea                  float64 `gorm:"column:built_area"`
	PrivateArea                float64 `gorm:"column:private_area"`
	Rooms                      int     `gorm:"column:rooms"`
	Bathrooms                  int     `gorm:"column:bathrooms"`
	RelationProjects           string  `gorm:"column:relation_projects;type:jsonb"`
	Latitude                   string  `gorm:"column:latitude"`
	Longitude                  string  `gorm:"column:longitude"`
	IsPublic                   *bool   `gorm:"column:is_public"`
	MegaProjectID              *string `gorm:"column:mega_project_id"`
}

func (Project) TableName() string { return "Projects" }

// Typology mirrors the "Typologies" table. Rows are addressed by
// (project_id, name) on writes; id carries the CRM record id and is what the
// sweep matches against.
type Typology struct {
	ID             string  `gorm:"column:id"`
	ProjectID      string  `gorm:"column:project_id"`
	Name           string  `gorm:"column:name"`
	Description    string  `gorm:"column:description"`
	PriceFrom      int     `gorm:"column:price_from"`
	PriceUp        int     `gorm:"column:price_up"`
	Rooms          int     `gorm:"column:rooms"`
	Bathrooms      int     `gorm:"column:bathrooms"`
	BuiltArea      float64 `gorm:"column:built_area"`
	PrivateArea    float64 `gorm:"column:private_area"`
	MinSeparation  int     `gorm:"column:min_separation"`
	MinDeposit     int     `gorm:"column:min_deposit"`
	DeliveryTime   int     `gorm:"column:delivery_time"`
	AvailableCount int     `gorm:"column:available_count"`
	Gallery        string  `gorm:"column:gallery;type:jsonb"`
	Plans          *string `gorm:"column:plans"`
}

func (Typology) TableName() string { return "Typologies" }

// GalleryItem is one element of a jsonb gallery column.
type GalleryItem struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

package models

// Результаты агрегаций для административной статистики.

// StatusCount — количество документов в разрезе статуса.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// MonthlyCount — количество регистраций за календарный месяц.
type MonthlyCount struct {
	Year  int   `bson:"year" json:"year"`
	Month int   `bson:"month" json:"month"`
	Count int64 `bson:"count" json:"count"`
}

// RevenueByType — выручка в разрезе типа платежа.
type RevenueByType struct {
	Type  string  `bson:"_id" json:"type"`
	Total float64 `bson:"total" json:"total"`
	Count int64   `bson:"count" json:"count"`
}

// Stats — сводная статистика для панели администратора.
type Stats struct {
	Users struct {
		Total               int64         `json:"total"`
		Active              int64         `json:"active"`
		Pending             int64         `json:"pending"`
		MembershipBreakdown []StatusCount `json:"membershipBreakdown"`
	} `json:"users"`
	Content struct {
		Articles struct {
			Total     int64 `json:"total"`
			Published int64 `json:"published"`
		} `json:"articles"`
		Events struct {
			Total    int64 `json:"total"`
			Upcoming int64 `json:"upcoming"`
		} `json:"events"`
	} `json:"content"`
	Financial struct {
		Payments struct {
			Total     int64 `json:"total"`
			Completed int64 `json:"completed"`
		} `json:"payments"`
		Revenue []RevenueByType `json:"revenue"`
	} `json:"financial"`
	Communications struct {
		UnreadContacts int64 `json:"unreadContacts"`
	} `json:"communications"`
	Trends struct {
		MonthlyRegistrations []MonthlyCount `json:"monthlyRegistrations"`
	} `json:"trends"`
}

package models

import "coparent/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Family{})
	db.Instance.AutoMigrate(&FamilyMember{})
	db.Instance.AutoMigrate(&Invitation{})
	db.Instance.AutoMigrate(&Event{})
	db.Instance.AutoMigrate(&Expense{})
	db.Instance.AutoMigrate(&Document{})
	db.Instance.AutoMigrate(&MarketplaceItem{})
}

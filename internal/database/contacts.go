package database

import "gorm.io/gorm"

// ListContacts returns all contacts ordered by name
func ListContacts(db *gorm.DB) ([]Contact, error) {
	var contacts []Contact
	if err := db.Order("name asc").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListActiveContacts returns contacts with the active flag set.
// Recipient resolution only ever considers active contacts.
func ListActiveContacts(db *gorm.DB) ([]Contact, error) {
	var contacts []Contact
	if err := db.Where("active = ?", true).Order("id asc").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetContact retrieves a contact by ID
func GetContact(db *gorm.DB, id uint) (*Contact, error) {
	var contact Contact
	if err := db.Preload("Groups").First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// CreateContact persists a new contact
func CreateContact(db *gorm.DB, contact *Contact) error {
	return db.Create(contact).Error
}

// UpdateContact applies a partial update to a contact
func UpdateContact(db *gorm.DB, id uint, updates map[string]interface{}) (*Contact, error) {
	if err := db.Model(&Contact{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetContact(db, id)
}

// DeleteContact removes a contact
func DeleteContact(db *gorm.DB, id uint) error {
	return db.Delete(&Contact{}, id).Error
}

// ========== Contact groups ==========

// ListContactGroups returns all contact groups with their members
func ListContactGroups(db *gorm.DB) ([]ContactGroup, error) {
	var groups []ContactGroup
	if err := db.Preload("Contacts").Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetContactGroup retrieves a contact group by ID with its members
func GetContactGroup(db *gorm.DB, id uint) (*ContactGroup, error) {
	var group ContactGroup
	if err := db.Preload("Contacts").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateContactGroup persists a new contact group
func CreateContactGroup(db *gorm.DB, group *ContactGroup) error {
	return db.Create(group).Error
}

// UpdateContactGroup applies a partial update to a contact group
func UpdateContactGroup(db *gorm.DB, id uint, updates map[string]interface{}) (*ContactGroup, error) {
	if err := db.Model(&ContactGroup{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetContactGroup(db, id)
}

// SetContactGroupMembers replaces a group's membership
func SetContactGroupMembers(db *gorm.DB, group *ContactGroup, contacts []Contact) error {
	return db.Model(group).Association("Contacts").Replace(contacts)
}

// DeleteContactGroup removes a contact group and its membership rows
func DeleteContactGroup(db *gorm.DB, id uint) error {
	group := ContactGroup{ID: id}
	if err := db.Model(&group).Association("Contacts").Clear(); err != nil {
		return err
	}
	return db.Delete(&group).Error
}

// Package site provides a typed view over the settings bag.
package site

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/controller/setting"
)

type (
	// Settings is the typed form of the settings bag. Each top level field is one setting row.
	Settings struct {
		SiteName        string        `json:"siteName"        validate:"required"`
		SiteDescription string        `json:"siteDescription"`
		SiteURL         string        `json:"siteUrl"         validate:"omitempty,url"`
		Email           string        `json:"email"           validate:"omitempty,email"`
		Phone           string        `json:"phone"`
		Address         string        `json:"address"`
		MetaKeywords    string        `json:"metaKeywords"`
		Favicon         string        `json:"favicon"`
		SocialMedia     SocialMedia   `json:"socialMedia"`
		SEO             SEO           `json:"seo"`
		Performance     Performance   `json:"performance"`
		Notifications   Notifications `json:"notifications"`
		Hero            Hero          `json:"hero"`
	}

	// SocialMedia holds the profile links shown in the footer.
	SocialMedia struct {
		Facebook  string `json:"facebook"`
		Twitter   string `json:"twitter"`
		Instagram string `json:"instagram"`
		LinkedIn  string `json:"linkedin"`
		YouTube   string `json:"youtube"`
	}

	// SEO toggles.
	SEO struct {
		EnableSitemap       bool   `json:"enableSitemap"`
		EnableRobots        bool   `json:"enableRobots"`
		GoogleAnalytics     string `json:"googleAnalytics"`
		GoogleSearchConsole string `json:"googleSearchConsole"`
	}

	// Performance toggles.
	Performance struct {
		EnableCaching     bool `json:"enableCaching"`
		EnableCompression bool `json:"enableCompression"`
		EnableLazyLoading bool `json:"enableLazyLoading"`
	}

	// Notifications toggles.
	Notifications struct {
		EmailNotifications bool `json:"emailNotifications"`
		PushNotifications  bool `json:"pushNotifications"`
		AdminAlerts        bool `json:"adminAlerts"`
	}

	// Hero is the landing section of the home page.
	Hero struct {
		Title           string `json:"title"`
		Subtitle        string `json:"subtitle"`
		Description     string `json:"description"`
		CTAText         string `json:"ctaText"`
		CTALink         string `json:"ctaLink"`
		ProfileImage    string `json:"profileImage"`
		BackgroundImage string `json:"backgroundImage"`
	}
)

// Defaults returns the settings an empty site is seeded with.
func Defaults() Settings {
	return Settings{
		SiteName:        "Hilal Yılmaz - Yazar",
		SiteDescription: "Genç Türk yazarı Hilal Yılmaz'ın resmi websitesi. Kitaplar, blog yazıları ve daha fazlası.",
		SiteURL:         "https://hilalyilmazhy.com",
		Email:           "hilal@hilalyilmazhy.com",
		Phone:           "+90 555 123 45 67",
		Address:         "İstanbul, Türkiye",
		MetaKeywords:    "hilal yılmaz, türk yazarı, kitap, roman, edebiyat, genç yazar",
		SocialMedia: SocialMedia{
			Facebook:  "https://facebook.com/hilalyilmazhy",
			Twitter:   "https://twitter.com/hilalyilmazhy",
			Instagram: "https://instagram.com/hilalyilmazhy",
			LinkedIn:  "https://linkedin.com/in/hilalyilmazhy",
			YouTube:   "https://youtube.com/@hilalyilmazhy",
		},
		SEO: SEO{
			EnableSitemap:   true,
			EnableRobots:    true,
			GoogleAnalytics: "G-XXXXXXXXXX",
		},
		Performance: Performance{
			EnableCaching:     true,
			EnableCompression: true,
			EnableLazyLoading: true,
		},
		Notifications: Notifications{
			EmailNotifications: true,
			AdminAlerts:        true,
		},
		Hero: Hero{
			Title:           "Hilal Yılmaz",
			Subtitle:        "Genç Türk Yazarı",
			CTAText:         "Kitaplarımı Keşfet",
			CTALink:         "/books",
			BackgroundImage: "/images/hero-bg.jpg",
		},
	}
}

// Load fills s from the settings bag. Keys missing from the bag keep their current value.
func (s *Settings) Load(db *gorm.DB) error {
	bag, err := setting.Bag(db)
	if err != nil {
		return err
	}

	data, err := json.Marshal(bag)
	if err != nil {
		return errors.Wrap(err, "encode settings bag")
	}

	return errors.Wrap(json.Unmarshal(data, s), "decode settings bag")
}

// Save writes every field of s as its own setting row in one transaction.
func (s *Settings) Save(db *gorm.DB) error {
	values, err := s.Values()
	if err != nil {
		return err
	}

	return setting.SetMany(db, values)
}

// Values splits s into per key JSON documents.
func (s *Settings) Values() (map[string]json.RawMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode settings")
	}

	var values map[string]json.RawMessage
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "split settings")
	}

	return values, nil
}

// Seed writes the defaults for every key that is not stored yet.
func Seed(db *gorm.DB) error {
	defaults := Defaults()

	values, err := defaults.Values()
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for name, value := range values {
			if _, err := setting.Create(tx, name, value); err != nil && !errors.Is(err, setting.ErrSettingAlreadyExists) {
				return err
			}
		}

		return nil
	})
}

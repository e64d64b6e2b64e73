package http

// seedCatalog loads the development catalog once per database.
func (s *Server) seedCatalog() error {
	var count int64
	if err := s.db.Model(&CategoryRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []CategoryRecord{
		{Title: "Tisort", Gender: "k", Code: "k:tisort", Img: "https://placehold.co/300x400", Rating: 4.2},
		{Title: "Pantolon", Gender: "k", Code: "k:pantolon", Img: "https://placehold.co/300x400", Rating: 4.0},
		{Title: "Gomlek", Gender: "e", Code: "e:gomlek", Img: "https://placehold.co/300x400", Rating: 4.5},
		{Title: "Ceket", Gender: "e", Code: "e:ceket", Img: "https://placehold.co/300x400", Rating: 3.9},
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	products := []ProductRecord{
		{Name: "Basic White Tee", Description: "Plain cotton t-shirt", Price: 19.99, ImageURL: "https://placehold.co/300x400", Stock: 120, Rating: 4.4, SellCount: 310, CategoryID: int(categories[0].ID)},
		{Name: "Graphic Tee", Description: "Printed t-shirt", Price: 24.99, ImageURL: "https://placehold.co/300x400", Stock: 80, Rating: 4.1, SellCount: 190, CategoryID: int(categories[0].ID)},
		{Name: "Slim Fit Jeans", Description: "Stretch denim", Price: 59.99, ImageURL: "https://placehold.co/300x400", Stock: 45, Rating: 4.3, SellCount: 150, CategoryID: int(categories[1].ID)},
		{Name: "Oxford Shirt", Description: "Button-down shirt", Price: 44.99, ImageURL: "https://placehold.co/300x400", Stock: 60, Rating: 4.6, SellCount: 220, CategoryID: int(categories[2].ID)},
		{Name: "Linen Shirt", Description: "Summer shirt", Price: 39.99, ImageURL: "https://placehold.co/300x400", Stock: 35, Rating: 4.0, SellCount: 95, CategoryID: int(categories[2].ID)},
		{Name: "Wool Blazer", Description: "Tailored blazer", Price: 129.99, ImageURL: "https://placehold.co/300x400", Stock: 20, Rating: 4.7, SellCount: 60, CategoryID: int(categories[3].ID)},
	}
	return s.db.Create(&products).Error
}

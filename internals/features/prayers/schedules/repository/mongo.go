package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CitiesCollection = "cities"

// MongoRepository satu dokumen per kota di koleksi "cities".
type MongoRepository struct {
	coll *mongo.Collection
}

var _ service.Repository = (*MongoRepository)(nil)

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CitiesCollection)}
}

// EnsureIndexes: slug unik, province.id & province.slug untuk ListCities.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "province.id", Value: 1}}},
		{Keys: bson.D{{Key: "province.slug", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// UpsertCities ReplaceOne(upsert) per kota. Dipakai importer.
// Ringkasan province disalin ke tiap dokumen kota, jadi sebelum menulis
// dicek dulu terhadap salinan yang sudah tersimpan (lihat checkProvinceDrift).
func (r *MongoRepository) UpsertCities(ctx context.Context, cities []dto.CityData) (int, error) {
	const op = "UpsertCities"
	if len(cities) == 0 {
		return 0, nil
	}
	if err := r.checkProvinces(ctx, cities); err != nil {
		return 0, err
	}

	n := 0
	for _, c := range cities {
		doc := toMongoCity(c)
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return n, apperr.InvalidInput(op, "city %s: slug %q already used by another city", c.ID, c.Slug)
			}
			return n, apperr.Upstream(op, err)
		}
		n++
	}
	return n, nil
}

// storedProvince satu varian ringkasan province yang tersimpan, beserta
// kota-kota yang membawanya.
type storedProvince struct {
	Province mongoProvince `bson:"_id"`
	CityIDs  []string      `bson:"cities"`
}

func provinceVariantsPipeline(ids, slugs []string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"province.id": bson.M{"$in": ids}},
			bson.M{"province.slug": bson.M{"$in": slugs}},
		}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$province",
			"cities": bson.M{"$addToSet": "$_id"},
		}}},
	}
}

func (r *MongoRepository) checkProvinces(ctx context.Context, cities []dto.CityData) error {
	const op = "UpsertCities"
	seenID := make(map[string]bool)
	seenSlug := make(map[string]bool)
	var ids, slugs []string
	for _, c := range cities {
		if !seenID[c.Province.ID] {
			seenID[c.Province.ID] = true
			ids = append(ids, c.Province.ID)
		}
		if !seenSlug[c.Province.Slug] {
			seenSlug[c.Province.Slug] = true
			slugs = append(slugs, c.Province.Slug)
		}
	}

	cur, err := r.coll.Aggregate(ctx, provinceVariantsPipeline(ids, slugs))
	if err != nil {
		return apperr.Upstream(op, err)
	}
	var stored []storedProvince
	if err := cur.All(ctx, &stored); err != nil {
		return apperr.Upstream(op, err)
	}
	return checkProvinceDrift(cities, stored)
}

// checkProvinceDrift menolak import yang membuat dua salinan province
// berbeda untuk id yang sama, atau dua id berbeda untuk slug yang sama.
// Salinan tersimpan yang semua kotanya ikut ditulis ulang boleh berubah
// (rename province penuh).
func checkProvinceDrift(incoming []dto.CityData, stored []storedProvince) error {
	want := make(map[string]dto.ProvinceSummary)
	ownerOfSlug := make(map[string]string)
	rewritten := make(map[string]bool, len(incoming))
	for _, c := range incoming {
		want[c.Province.ID] = c.Province
		ownerOfSlug[c.Province.Slug] = c.Province.ID
		rewritten[c.ID] = true
	}

	ve := &apperr.ValidationError{Op: "UpsertCities"}
	for _, sp := range stored {
		var kept []string
		for _, id := range sp.CityIDs {
			if !rewritten[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			continue
		}
		sort.Strings(kept)
		old := dto.ProvinceSummary(sp.Province)

		if w, ok := want[old.ID]; ok && (w.Name != old.Name || w.Slug != old.Slug) {
			ve.Add("province."+old.ID,
				"import has {%s, %s} but stored cities %v keep {%s, %s}",
				w.Name, w.Slug, kept, old.Name, old.Slug)
		}
		if owner, ok := ownerOfSlug[old.Slug]; ok && owner != old.ID {
			ve.Add("province."+owner,
				"slug %q already belongs to province %s (cities %v)", old.Slug, old.ID, kept)
		}
	}
	return ve.OrNil()
}

// findCity: by _id dulu, lalu slug. projection nil = dokumen penuh.
func (r *MongoRepository) findCity(ctx context.Context, op, idOrSlug string, projection any) (mongoCity, error) {
	key, slug := helper.LookupKey(idOrSlug)
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doc mongoCity
	err := r.coll.FindOne(ctx, bson.M{"_id": key}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = r.coll.FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return mongoCity{}, apperr.CityNotFound(op, idOrSlug)
	}
	if err != nil {
		return mongoCity{}, apperr.Upstream(op, err)
	}
	return doc, nil
}

func (r *MongoRepository) GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error) {
	doc, err := r.findCity(ctx, "GetCity", idOrSlug, nil)
	if err != nil {
		return dto.CityData{}, err
	}
	c, err := doc.toDTO()
	if err != nil {
		return dto.CityData{}, fmt.Errorf("GetCity: corrupt document %s: %w", doc.ID, err)
	}
	return c, nil
}

func (r *MongoRepository) GetPrayerForDate(ctx context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error) {
	const op = "GetPrayerForDate"
	day := date.Format(dbtime.DateLayout)

	doc, err := r.findCity(ctx, op, cityIDOrSlug, prayerForDateProjection(day))
	if err != nil {
		return dto.Prayer{}, err
	}
	return matchedPrayer(op, doc, day)
}

// matchedPrayer: dokumen hasil $elemMatch; prayers kosong = kota ada
// tapi tanggalnya tidak punya jadwal.
func matchedPrayer(op string, doc mongoCity, day string) (dto.Prayer, error) {
	if len(doc.Prayers) == 0 {
		return dto.Prayer{}, apperr.ScheduleNotFound(op, doc.ID, day)
	}
	p, err := doc.Prayers[0].toDTO(doc.ID)
	if err != nil {
		return dto.Prayer{}, fmt.Errorf("%s: corrupt document %s: %w", op, doc.ID, err)
	}
	return p, nil
}

func (r *MongoRepository) GetPrayersInRange(ctx context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error) {
	const op = "GetPrayersInRange"
	city, err := r.findCity(ctx, op, cityIDOrSlug, bson.M{"_id": 1})
	if err != nil {
		return nil, err
	}

	pipeline := prayersInRangePipeline(city.ID, from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout))
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Upstream(op, err)
	}
	defer cur.Close(ctx)

	out := make([]dto.Prayer, 0)
	for cur.Next(ctx) {
		var doc mongoCity
		if err := cur.Decode(&doc); err != nil {
			return nil, apperr.Upstream(op, err)
		}
		for _, mp := range doc.Prayers {
			p, err := mp.toDTO(city.ID)
			if err != nil {
				return nil, fmt.Errorf("%s: corrupt document %s: %w", op, city.ID, err)
			}
			out = append(out, p)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Upstream(op, err)
	}
	return out, nil
}

// $elemMatch: hanya satu elemen prayers yang dikirim balik
func prayerForDateProjection(day string) bson.M {
	return bson.M{
		"_id":     1,
		"prayers": bson.M{"$elemMatch": bson.M{"date": day}},
	}
}

// tanggal disimpan "YYYY-MM-DD", jadi perbandingan string = urutan kalender
func prayersInRangePipeline(cityID, from, to string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": cityID}}},
		{{Key: "$project", Value: bson.M{
			"prayers": bson.M{"$filter": bson.M{
				"input": "$prayers",
				"as":    "p",
				"cond": bson.M{"$and": bson.A{
					bson.M{"$gte": bson.A{"$$p.date", from}},
					bson.M{"$lte": bson.A{"$$p.date", to}},
				}},
			}},
		}}},
	}
}

// urut nama tanpa beda huruf besar/kecil, lalu id (sama dengan Dataset & Postgres)
func provincesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":  "$province.id",
			"name": bson.M{"$first": "$province.name"},
			"slug": bson.M{"$first": "$province.slug"},
		}}},
		{{Key: "$addFields", Value: bson.M{"sortKey": bson.M{"$toLower": "$name"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "sortKey", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}

func (r *MongoRepository) ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error) {
	const op = "ListProvinces"
	pipeline := provincesPipeline()
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Upstream(op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID   string `bson:"_id"`
		Name string `bson:"name"`
		Slug string `bson:"slug"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Upstream(op, err)
	}
	out := make([]dto.ProvinceSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.ProvinceSummary{ID: p.ID, Name: p.Name, Slug: p.Slug})
	}
	return out, nil
}

// ListCities: provinsi hanya ada lewat kotanya, jadi hasil kosong berarti
// provinsinya tidak dikenal.
func (r *MongoRepository) ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	const op = "ListCities"
	key, slug := helper.LookupKey(provinceIDOrSlug)
	opts := options.Find().
		SetProjection(bson.M{"prayers": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	find := func(filter bson.M) ([]mongoCity, error) {
		cur, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		var docs []mongoCity
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	docs, err := find(bson.M{"province.id": key})
	if err == nil && len(docs) == 0 {
		docs, err = find(bson.M{"province.slug": slug})
	}
	if err != nil {
		return nil, apperr.Upstream(op, err)
	}
	return citySummaries(op, provinceIDOrSlug, docs)
}

func citySummaries(op, provinceIDOrSlug string, docs []mongoCity) ([]dto.CitySummary, error) {
	if len(docs) == 0 {
		return nil, apperr.ProvinceNotFound(op, provinceIDOrSlug)
	}
	out := make([]dto.CitySummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.summary())
	}
	return out, nil
}
